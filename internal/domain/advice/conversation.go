package advice

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/trekmate/trekmate-core/internal/types"
)

// Conversation owns the ordered, append-only message history of one chat
// session. Concurrent sends against the same session are serialized so
// replies are appended in request order.
type Conversation struct {
	svc     *Service
	session types.ChatSession

	mu       sync.Mutex
	messages []types.Message
	nextID   int
	now      func() time.Time
}

// NewConversation initializes a session and seeds the history with the
// backend's welcome message when one is returned.
func NewConversation(ctx context.Context, svc *Service) *Conversation {
	session, welcome := svc.Initialize(ctx)
	c := &Conversation{svc: svc, session: session, nextID: 1, now: time.Now}
	if welcome != "" {
		c.append(types.RoleAssistant, welcome)
	}
	return c
}

// Session returns the session handle threading this conversation.
func (c *Conversation) Session() types.ChatSession { return c.session }

// Send records the user's turn, obtains the assistant's reply, and returns
// the appended assistant message. A blank message is ignored.
func (c *Conversation) Send(ctx context.Context, content string) (types.Message, bool) {
	if strings.TrimSpace(content) == "" {
		return types.Message{}, false
	}

	// One lock spans the whole exchange: user turn, remote call, assistant
	// turn. This is what keeps interleaved sends ordered.
	c.mu.Lock()
	defer c.mu.Unlock()

	c.appendLocked(types.RoleUser, content)
	reply := c.svc.SendMessage(ctx, c.session, content)
	return c.appendLocked(types.RoleAssistant, reply.Text), true
}

// SendAboutTrek is Send with trek/location context enrichment.
func (c *Conversation) SendAboutTrek(ctx context.Context, content string, trek *types.Trek, loc *types.GeoPoint) (types.Message, bool) {
	if strings.TrimSpace(content) == "" {
		return types.Message{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.appendLocked(types.RoleUser, content)
	reply := c.svc.SendMessageWithContext(ctx, c.session, content, trek, loc)
	return c.appendLocked(types.RoleAssistant, reply.Text), true
}

// Messages returns a copy of the history in append order.
func (c *Conversation) Messages() []types.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// End tears down the session best-effort.
func (c *Conversation) End(ctx context.Context) {
	c.svc.EndChat(ctx, c.session)
}

func (c *Conversation) append(role types.MessageRole, content string) types.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appendLocked(role, content)
}

func (c *Conversation) appendLocked(role types.MessageRole, content string) types.Message {
	msg := types.Message{
		ID:        c.nextID,
		Role:      role,
		Content:   content,
		Timestamp: c.now(),
	}
	c.nextID++
	c.messages = append(c.messages, msg)
	return msg
}
