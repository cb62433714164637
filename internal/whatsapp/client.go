package whatsapp

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
)

// Client wraps the whatsmeow connection. Pairing state lives in its own
// SQLite file, separate from the bot's data store.
type Client struct {
	wa *whatsmeow.Client
}

func New(ctx context.Context, sessionPath string) (*Client, error) {
	container, err := sqlstore.New(ctx, "sqlite3",
		fmt.Sprintf("file:%s?_foreign_keys=on", sessionPath), waLog.Noop)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("load device: %w", err)
	}

	wa := whatsmeow.NewClient(device, waLog.Stdout("whatsapp", "WARN", true))
	return &Client{wa: wa}, nil
}

// Connect establishes the connection, printing a pairing QR code to the
// terminal when the device has not been linked yet.
func (c *Client) Connect(ctx context.Context) error {
	if c.wa.Store.ID == nil {
		qrChan, err := c.wa.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("get qr channel: %w", err)
		}
		if err := c.wa.Connect(); err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		for evt := range qrChan {
			switch evt.Event {
			case "code":
				qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
				slog.Info("scan the QR code with WhatsApp to pair")
			case "success":
				slog.Info("device paired")
			default:
				slog.Warn("pairing event", "event", evt.Event)
			}
		}
		return nil
	}

	if err := c.wa.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return nil
}

func (c *Client) Disconnect() {
	c.wa.Disconnect()
}

// OnMessage registers fn for every inbound chat message. Other event kinds
// are logged and dropped.
func (c *Client) OnMessage(fn func(ctx context.Context, msg *Message)) {
	c.wa.AddEventHandler(func(evt any) {
		switch v := evt.(type) {
		case *events.Message:
			if v.Info.IsFromMe {
				return
			}
			msg := c.normalize(v)
			if msg == nil {
				return
			}
			fn(context.Background(), msg)
		case *events.Connected:
			slog.Info("connected to whatsapp")
		case *events.LoggedOut:
			slog.Warn("logged out, delete the session file and pair again")
		}
	})
}

// ContactName resolves a name from the device's contact book, or "".
func (c *Client) ContactName(ctx context.Context, jid types.JID) string {
	info, err := c.wa.Store.Contacts.GetContact(ctx, jid)
	if err != nil || !info.Found {
		return ""
	}
	if info.FullName != "" {
		return info.FullName
	}
	return info.FirstName
}

// GroupParticipants lists the member identifiers of a group chat.
func (c *Client) GroupParticipants(ctx context.Context, chat types.JID) ([]string, error) {
	info, err := c.wa.GetGroupInfo(ctx, chat)
	if err != nil {
		return nil, fmt.Errorf("get group info: %w", err)
	}
	ids := make([]string, 0, len(info.Participants))
	for _, p := range info.Participants {
		ids = append(ids, p.JID.ToNonAD().String())
	}
	return ids, nil
}

// BotID returns the bot's own identifier, or "" before pairing.
func (c *Client) BotID() string {
	if c.wa.Store.ID == nil {
		return ""
	}
	return c.wa.Store.ID.ToNonAD().String()
}
