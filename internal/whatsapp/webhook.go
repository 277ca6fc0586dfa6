package whatsapp

import "encoding/json"

// Envelope is the provider event wrapper delivered to POST /webhook/whatsapp.
type Envelope struct {
	Entry []Entry `json:"entry"`
}

type Entry struct {
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

type Value struct {
	Messages []Message `json:"messages"`
}

type Message struct {
	From        string       `json:"from"`
	Type        string       `json:"type"`
	Text        *Text        `json:"text,omitempty"`
	Interactive *Interactive `json:"interactive,omitempty"`
}

type Text struct {
	Body string `json:"body"`
}

type Interactive struct {
	Type        string       `json:"type"`
	ButtonReply *ButtonReply `json:"button_reply,omitempty"`
}

type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ParseWebhook decodes a provider event envelope.
func ParseWebhook(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// EachMessage walks every message in the envelope, visiting only changes on
// the messages field.
func (e *Envelope) EachMessage(fn func(Message)) {
	for _, entry := range e.Entry {
		for _, ch := range entry.Changes {
			if ch.Field != "messages" {
				continue
			}
			for _, m := range ch.Value.Messages {
				fn(m)
			}
		}
	}
}
