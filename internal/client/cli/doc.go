// Package cli implements the talksy command-line client.
//
// Commands:
//
//	register            create an account and sign in
//	login [--remember]  sign in and keep the session cookie
//	logout              sign out and forget the session cookie
//	status              report whether the stored session is valid
//	open <view>         show a view, applying the route guard
//
// The session cookie is kept in a JSON file under the configured state
// dir so it survives between invocations.
package cli
