// Package cli is the terminal front end of the pre-screen portal.
//
// App wires configuration, the local session database, the REST gateway
// and the domain services, then runs a line-oriented REPL. Anonymous
// users can register, log in and recover their login ID; signed-in users
// list applications, start new ones and open an application's detail
// screen, a nested REPL for documents, review and messages.
//
// Commands that need a signed-in user pass through the route guard first.
// All user-facing outcomes are printed as notifications by notify.Writer.
package cli
