package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/arbiter/board"
)

const (
	DefaultEndpoint = "https://stockfish.online/api/s/v2.php"
	DefaultTimeout  = 30 * time.Second

	maxResponseSize = 1 << 20
)

// Level is the playing strength of the remote engine.
type Level uint8

const (
	LevelMin Level = 1
	LevelMax Level = 5

	DefaultLevel = LevelMin
)

var levelDepth = [LevelMax + 1]uint8{
	1: 10,
	2: 11,
	3: 12,
	4: 13,
	5: 15,
}

func (l Level) Valid() bool {
	return l >= LevelMin && l <= LevelMax
}

// Depth is the search depth requested for the level.
func (l Level) Depth() uint8 {
	if !l.Valid() {
		return levelDepth[DefaultLevel]
	}
	return levelDepth[l]
}

// Analysis is the remote engine's verdict on a position. Evaluation is in
// pawns from White's point of view; Mate is set instead when a mate is found.
type Analysis struct {
	Evaluation   *float64
	Mate         *int
	BestMove     board.Move
	Ponder       *board.Move
	Continuation Line
}

type remoteResponse struct {
	Success      bool     `json:"success"`
	Evaluation   *float64 `json:"evaluation"`
	Mate         *int     `json:"mate"`
	BestMove     string   `json:"bestmove"`
	Continuation string   `json:"continuation"`
	Data         string   `json:"data"`
}

// Remote asks a stockfish.online compatible HTTP endpoint for moves.
type Remote struct {
	client   *http.Client
	endpoint string
	level    Level
	timeout  time.Duration
	logger   zerolog.Logger
}

type RemoteOption func(*Remote)

func WithHTTPClient(client *http.Client) RemoteOption {
	return func(r *Remote) {
		r.client = client
	}
}

func WithEndpoint(endpoint string) RemoteOption {
	return func(r *Remote) {
		r.endpoint = endpoint
	}
}

// WithLevel sets the strength; out of range values keep the default.
func WithLevel(level Level) RemoteOption {
	return func(r *Remote) {
		if level.Valid() {
			r.level = level
		}
	}
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(timeout time.Duration) RemoteOption {
	return func(r *Remote) {
		r.timeout = timeout
	}
}

func WithLogger(logger zerolog.Logger) RemoteOption {
	return func(r *Remote) {
		r.logger = logger
	}
}

func NewRemote(opts ...RemoteOption) *Remote {
	r := &Remote{
		client:   http.DefaultClient,
		endpoint: DefaultEndpoint,
		level:    DefaultLevel,
		timeout:  DefaultTimeout,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Remote) Level() Level {
	return r.level
}

func (r *Remote) Suggest(ctx context.Context, fen string) (board.Move, error) {
	a, err := r.Analyze(ctx, fen)
	if err != nil {
		return board.Move{}, err
	}
	return a.BestMove, nil
}

func (r *Remote) Analyze(ctx context.Context, fen string) (Analysis, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	u, err := url.Parse(r.endpoint)
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: bad endpoint: %v", ErrEngineUnavailable, err)
	}
	q := u.Query()
	q.Set("fen", fen)
	q.Set("depth", strconv.Itoa(int(r.level.Depth())))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	r.logger.Debug().Str("fen", fen).Uint8("depth", r.level.Depth()).Msg("requesting move")
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn().Err(err).Msg("engine request failed")
		return Analysis{}, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: reading response: %v", ErrEngineUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		r.logger.Warn().Int("status", resp.StatusCode).Msg("engine returned an error status")
		return Analysis{}, fmt.Errorf("%w: status %d", ErrEngineUnavailable, resp.StatusCode)
	}

	var res remoteResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return Analysis{}, fmt.Errorf("%w: decoding response: %v", ErrEngineUnavailable, err)
	}
	r.logger.Debug().
		Dur("took", time.Since(start)).
		Str("bestmove", res.BestMove).
		Msg("engine responded")
	if !res.Success {
		return Analysis{}, fmt.Errorf("%w: %s", ErrNoMove, res.Data)
	}
	return res.analysis()
}

// analysis decodes a "bestmove e2e4 ponder e7e5" answer.
func (res remoteResponse) analysis() (Analysis, error) {
	fields := strings.Fields(res.BestMove)
	if len(fields) < 2 || fields[0] != "bestmove" || fields[1] == "(none)" {
		return Analysis{}, fmt.Errorf("%w: %q", ErrNoMove, res.BestMove)
	}
	best, err := board.ParseMove(fields[1])
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrNoMove, err)
	}
	a := Analysis{
		Evaluation: res.Evaluation,
		Mate:       res.Mate,
		BestMove:   best,
	}
	if len(fields) >= 4 && fields[2] == "ponder" {
		if ponder, err := board.ParseMove(fields[3]); err == nil {
			a.Ponder = &ponder
		}
	}
	if cont, err := ParseLine(res.Continuation); err == nil {
		a.Continuation = cont
	}
	return a, nil
}
