// Package bot serves the computer players over NATS. A request is a
// position string, optionally carrying "bot" and "depth" ops. The reply
// is a protobuf Struct holding either the chosen move's digits and
// capture flag, or an error message.
package bot

import (
	"context"
	"fmt"
	"io"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	aibot "github.com/domino14/checkers/ai/bot"
	"github.com/domino14/checkers/config"
	"github.com/domino14/checkers/move"
	"github.com/domino14/checkers/position"
)

// Fields of a reply.
const (
	FieldMove     = "move"
	FieldCaptured = "captured"
	FieldError    = "error"
)

type Bot struct {
	config    *config.Config
	logStream io.Writer
}

func NewBot(cfg *config.Config) *Bot {
	return &Bot{config: cfg}
}

// SetLogStream makes the searching bots log their decisions to w.
func (b *Bot) SetLogStream(w io.Writer) {
	b.logStream = w
}

func errorResponse(message string, err error) *structpb.Struct {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldError: structpb.NewStringValue(msg),
	}}
}

func moveResponse(m *move.Move) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldMove:     structpb.NewStringValue(m.Digits()),
		FieldCaptured: structpb.NewBoolValue(m.Captured()),
	}}
}

// searchDepth is the depth a request asks for, or the configured default,
// but never deeper than the configured maximum.
func (b *Bot) searchDepth(p *position.Parsed) int {
	depth := p.Depth(b.config.GetInt(config.ConfigSearchDepth))
	if maxDepth := b.config.GetInt(config.ConfigBotMaxDepth); maxDepth > 0 && depth > maxDepth {
		log.Warn().Int("requested", depth).Int("max", maxDepth).Msg("clamping search depth")
		depth = maxDepth
	}
	return depth
}

func (b *Bot) handle(data []byte) *structpb.Struct {
	p, err := position.Parse(string(data))
	if err != nil {
		return errorResponse("could not parse request", err)
	}
	kind := aibot.AlphaBetaBot
	if k, ok := p.Opcodes[position.OpBot]; ok {
		kind, err = aibot.ParseKind(k)
		if err != nil {
			return errorResponse("could not create bot", err)
		}
	}
	depth := b.searchDepth(p)
	var opts []aibot.Option
	if b.logStream != nil {
		opts = append(opts, aibot.WithLogStream(b.logStream))
	}
	player, err := aibot.New(kind, depth, opts...)
	if err != nil {
		return errorResponse("could not create bot", err)
	}
	m, err := player.ChooseMove(p.Game)
	if err != nil {
		return errorResponse("could not choose a move", err)
	}
	log.Info().Str("bot", kind.String()).Int("depth", depth).
		Msgf("Generated move: %s", m.ShortDescription())
	return moveResponse(m)
}

// Main answers requests on channel until ctx is done.
func Main(ctx context.Context, nc *nats.Conn, channel string, b *Bot) error {
	sub, err := nc.Subscribe(channel, func(m *nats.Msg) {
		log.Info().Msgf("RECV: %d bytes", len(m.Data))
		data, err := proto.Marshal(b.handle(m.Data))
		if err != nil {
			// the client fails to decode this and reports it
			log.Err(err).Msg("marshal-error")
			data = []byte(err.Error())
		}
		if err := m.Respond(data); err != nil {
			log.Err(err).Msg("respond-error")
		}
	})
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	if err := nc.LastError(); err != nil {
		return err
	}
	log.Info().Msgf("Listening on [%s]", channel)

	<-ctx.Done()
	return sub.Drain()
}

// ParseResponse decodes a reply from the bot service.
func ParseResponse(data []byte) (*move.Move, error) {
	resp := &structpb.Struct{}
	if err := proto.Unmarshal(data, resp); err != nil {
		return nil, fmt.Errorf("malformed bot response: %w", err)
	}
	fields := resp.GetFields()
	if e, ok := fields[FieldError]; ok {
		return nil, fmt.Errorf("bot returned: %s", e.GetStringValue())
	}
	digits, ok := fields[FieldMove].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil, fmt.Errorf("bot response has no %s", FieldMove)
	}
	captured, ok := fields[FieldCaptured].GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return nil, fmt.Errorf("bot response has no %s flag", FieldCaptured)
	}
	return move.FromDigits(digits.StringValue, captured.BoolValue)
}
