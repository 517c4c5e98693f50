// Package process terminates browser process trees left behind by the
// headless Chrome launcher.
package process
