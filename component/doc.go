// Package component defines lifecycle-managed parts of a picoview process
// and the Registry that starts them in order and stops them in reverse.
//
// The REST client and the sandbox server are both components; bootstrap
// registers them, starts them before the command runs and stops them on
// exit.
package component
