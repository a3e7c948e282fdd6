package bot

import (
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	aibot "github.com/domino14/checkers/ai/bot"
	"github.com/domino14/checkers/game"
	"github.com/domino14/checkers/move"
	"github.com/domino14/checkers/position"
)

const requestTimeout = 10 * time.Second

type Client struct {
	// NATS connection
	nc      *nats.Conn
	channel string
}

func NewClient(nc *nats.Conn, channel string) *Client {
	return &Client{nc: nc, channel: channel}
}

func MakeRequest(g *game.Game, kind aibot.Kind, depth int) []byte {
	pos := position.WithOps(position.FromGame(g),
		position.OpBot, kind.String(), position.OpDepth, strconv.Itoa(depth))
	return []byte(pos)
}

// RequestMove sends a game to the bot and gets a move back. The move is
// checked against the game's legal moves but not played.
func (c *Client) RequestMove(g *game.Game, kind aibot.Kind, depth int) (*move.Move, error) {
	res, err := c.nc.Request(c.channel, MakeRequest(g, kind, depth), requestTimeout)
	if err != nil {
		if c.nc.LastError() != nil {
			log.Error().Msgf("%v for request", c.nc.LastError())
		}
		log.Error().Msgf("%v for request", err)
		return nil, err
	}
	log.Debug().Msgf("res: %d bytes", len(res.Data))
	m, err := ParseResponse(res.Data)
	if err != nil {
		return nil, err
	}
	if err := g.Copy().PlayMove(m); err != nil {
		return nil, err
	}
	return m, nil
}
