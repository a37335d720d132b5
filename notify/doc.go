// Package notify turns stored classifications into a digest and
// delivers it through configured channels.
//
// Channel implementations register themselves by name, the same way
// paper sources do:
//
//	import _ "github.com/poiesic/paperflow/notify/feishu"
//
//	channel, err := notify.Open("feishu", map[string]string{
//	    "webhook_url": url,
//	})
//
// BuildDigest applies exclusion-tag filtering and primary-area grouping;
// it never touches the network.
package notify
