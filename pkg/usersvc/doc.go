// Package usersvc is an in-memory users service speaking the same HTTP
// contract as the production users API:
//
//	GET    <base>        list, {"data": [...]}
//	POST   <base>        create, 201
//	GET    <base>/{id}   read one
//	PUT    <base>/{id}   update
//	DELETE <base>/{id}   delete
//
// Every answer is wrapped in {"data", "status", "success", "message"} unless
// the service runs in bare mode, where single-record answers carry the record
// alone. Ids are sequential integers.
//
// It backs `userdesk serve` and the tests of the client packages.
package usersvc
