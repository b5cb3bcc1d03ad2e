// Package wizard provides the interactive configuration setup.
//
// It guides users through creating a mediashift configuration file
// using charmbracelet/huh for form-based input collection.
//
// The main entry point is Run, which walks through the question groups
// and returns a Result. Use BuildConfig to convert a Result into a
// Config struct, and WriteConfig to generate the YAML output file.
package wizard
