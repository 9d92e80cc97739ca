// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. Apart from golang.org/x/time for
// watch throttling they import only the domain and port packages.
package services
