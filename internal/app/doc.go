// Package app provides the main application logic for downloading audio content.
// It initializes the necessary components, such as the catalog client, URL resolver,
// filename builder, transcoder, and tag processor, and orchestrates the download process.
package app
