// Package cli is the interactive terminal front end of cadastro.
//
// The REPL reads one command per line:
//
//	help             show available commands
//	list | l         list registrations
//	new              fill in a new registration
//	edit <id>        edit a registration
//	show <id>        show one registration
//	check <id>       check a password against the stored one
//	delete <id>      delete a registration, after confirmation
//	stats            operation counters since start
//	exit | quit      leave the program
//
// Feedback from the registration service is printed as "✔ message" for
// successes and "• message" for notices.
package cli
