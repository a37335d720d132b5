// Package arxiv implements the source.Source interface against the
// public arXiv Atom API.
//
// The client queries each requested category newest-first, pages until
// it passes the target day, and deduplicates cross-listed papers. It
// registers itself under the name "arxiv"; recognized factory options
// are "endpoint" and "page_size".
package arxiv
