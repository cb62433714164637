package whatsapp

import (
	"context"
	"fmt"

	"github.com/lucassaureliano/amelie/internal/domain"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

// Message is the normalized inbound event handed to the handler layer: plain
// text or a single media attachment, plus the group/mention context needed to
// decide whether to answer.
type Message struct {
	Chat     types.JID
	Sender   types.JID
	PushName string
	Text     string
	IsGroup  bool

	// Mentioned and QuotedSender identify whether the bot was addressed
	Mentioned    []string
	QuotedSender string

	image *waE2E.ImageMessage
	audio *waE2E.AudioMessage

	client *Client
}

func (c *Client) normalize(evt *events.Message) *Message {
	msg := &Message{
		Chat:     evt.Info.Chat,
		Sender:   evt.Info.Sender.ToNonAD(),
		PushName: evt.Info.PushName,
		IsGroup:  evt.Info.IsGroup,
		client:   c,
	}

	m := evt.Message
	switch {
	case m.GetConversation() != "":
		msg.Text = m.GetConversation()
	case m.GetExtendedTextMessage() != nil:
		ext := m.GetExtendedTextMessage()
		msg.Text = ext.GetText()
		if ci := ext.GetContextInfo(); ci != nil {
			msg.Mentioned = ci.GetMentionedJID()
			msg.QuotedSender = ci.GetParticipant()
		}
	case m.GetImageMessage() != nil:
		msg.image = m.GetImageMessage()
		msg.Text = msg.image.GetCaption()
		if ci := msg.image.GetContextInfo(); ci != nil {
			msg.Mentioned = ci.GetMentionedJID()
			msg.QuotedSender = ci.GetParticipant()
		}
	case m.GetAudioMessage() != nil:
		msg.audio = m.GetAudioMessage()
		if ci := msg.audio.GetContextInfo(); ci != nil {
			msg.Mentioned = ci.GetMentionedJID()
			msg.QuotedSender = ci.GetParticipant()
		}
	default:
		return nil
	}

	return msg
}

// HasMedia reports whether the message carries a supported attachment.
func (m *Message) HasMedia() bool {
	return m.image != nil || m.audio != nil
}

// MediaKind returns the attachment kind, or "" for plain text.
func (m *Message) MediaKind() string {
	switch {
	case m.image != nil:
		return domain.MediaKindImage
	case m.audio != nil:
		return domain.MediaKindAudio
	}
	return ""
}

// DownloadMedia fetches the attachment bytes and wraps them for the core.
func (m *Message) DownloadMedia(ctx context.Context) (*domain.Media, error) {
	var (
		downloadable whatsmeow.DownloadableMessage
		kind         string
		mimeType     string
	)
	switch {
	case m.image != nil:
		downloadable, kind, mimeType = m.image, domain.MediaKindImage, m.image.GetMimetype()
	case m.audio != nil:
		downloadable, kind, mimeType = m.audio, domain.MediaKindAudio, m.audio.GetMimetype()
	default:
		return nil, fmt.Errorf("message has no media")
	}

	data, err := m.client.wa.Download(ctx, downloadable)
	if err != nil {
		return nil, fmt.Errorf("download media: %w", err)
	}

	return &domain.Media{
		Kind:     kind,
		MimeType: mimeType,
		Data:     data,
		Caption:  m.Text,
	}, nil
}

// MentionsBot reports whether the bot was tagged or its message quoted.
// botID is the non-AD identifier from BotID.
func (m *Message) MentionsBot(botID string) bool {
	if botID == "" {
		return false
	}
	if sameUser(m.QuotedSender, botID) {
		return true
	}
	for _, jid := range m.Mentioned {
		if sameUser(jid, botID) {
			return true
		}
	}
	return false
}

// sameUser compares a raw transport JID, which can carry a device or agent
// suffix, against a non-AD identifier.
func sameUser(raw, nonAD string) bool {
	if raw == "" {
		return false
	}
	jid, err := types.ParseJID(raw)
	if err != nil {
		return raw == nonAD
	}
	return jid.ToNonAD().String() == nonAD
}
