// Package auth provides browser-based authentication for the Spotify web player.
//
// It drives a visible Chrome instance via go-rod with stealth patches,
// lets the user log in manually, and captures the sp_dc session cookie
// that the rest of the tool authenticates with.
package auth
