// Package fetch harvests tool entries and their icons from a tool directory
// website and turns them into a catalog document.
//
// The flow used by the scrape command is:
//
//	PageSource.Fetch -> ParseDirectory -> Classify -> BuildCatalog -> Downloader.Download
//
// PageSource has two implementations: HTTPSource for static pages and
// BrowserSource, which renders script-built pages in headless Chrome.
package fetch
