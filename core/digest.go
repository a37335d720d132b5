package core

import "time"

// DigestEntry pairs a paper with its classification for delivery.
type DigestEntry struct {
	Paper          Paper
	Classification Classification
}

// DigestGroup is a set of digest entries sharing a primary area label.
type DigestGroup struct {
	PrimaryArea string
	Entries     []DigestEntry
}

// Digest is the filtered, aggregated set of classification results prepared
// for delivery. It is computed fresh from stored classifications on every
// run and is not persisted.
type Digest struct {
	Date     string
	Total    int
	Interest []DigestEntry // entries matching configured interest tags, original order
	Groups   []DigestGroup // remaining entries grouped by primary area, sorted by label
}

// Empty reports whether the digest carries no entries after filtering.
func (d *Digest) Empty() bool {
	return d.Total == 0
}

// DeliveryReceipt records a successful digest delivery to one channel.
type DeliveryReceipt struct {
	Channel  string
	Messages int
	SentAt   time.Time
}
