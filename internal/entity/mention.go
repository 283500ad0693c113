package entity

// Mention is a message addressed to the bot on the external feed.
type Mention struct {
	ID     int64  `json:"id"`
	Author string `json:"user"`
	Text   string `json:"text"`
}

type Reply struct {
	InReplyTo int64  `json:"in_reply_to_status_id"`
	Text      string `json:"status"`
}
