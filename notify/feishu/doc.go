// Package feishu implements the notify.Notifier interface against a
// Feishu incoming webhook.
//
// The digest is rendered as one rich-text post message per group, with a
// templated divider and a configurable delay between messages so large
// digests do not flood the channel. Every message is retried with
// exponential backoff before the delivery counts as failed.
//
// The notifier registers itself under the name "feishu". Recognized
// factory options are "webhook_url" (required), "delay_ms", "separator"
// and "link_style" ("papers_cool" or "alphaxiv").
package feishu
