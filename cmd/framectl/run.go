package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/commsbind/internal/bridge"
	"github.com/danmuck/commsbind/internal/config"
	"github.com/danmuck/commsbind/internal/observability"
	"github.com/danmuck/commsbind/internal/protocol"
	"github.com/danmuck/commsbind/internal/schemas"
)

type options struct {
	cfg     config.ToolConfig
	input   string
	resync  bool
	metrics bool
	list    bool
}

type summary struct {
	Frames   int
	Errors   int
	Trailing int
}

func run(opts options, stdin io.Reader, out io.Writer) error {
	b, err := bridge.New(schemas.All()...)
	if err != nil {
		return err
	}
	if opts.list {
		return listCatalog(b, out)
	}
	fr, err := b.Frame(opts.cfg.Frame)
	if err != nil {
		return err
	}
	fr = fr.WithLimits(opts.cfg.Limits())

	data, err := readInput(opts.input, opts.cfg.InputFormat, stdin)
	if err != nil {
		return err
	}
	log.Debug().Str("frame", fr.String()).Int("octets", len(data)).Msg("decoding input")

	h := bridge.HandlerFunc(func(m *bridge.Message) {
		log.Debug().
			Str("message", m.QualifiedName()).
			Uint64("id", uint64(m.ID())).
			Int("length", m.Length()).
			Msg("frame decoded")
		fmt.Fprintln(out, m.String())
	})
	sum, err := decodeStream(fr, data, opts.cfg.ChunkSize, opts.resync, h)
	log.Info().
		Int("frames", sum.Frames).
		Int("errors", sum.Errors).
		Int("trailing", sum.Trailing).
		Msg("decode finished")
	if opts.metrics {
		if merr := printMetrics(out); merr != nil && err == nil {
			err = merr
		}
	}
	return err
}

// decodeStream feeds data to fr in chunks, carrying unconsumed octets into
// the next call the way a stream reader would.
func decodeStream(fr *bridge.Frame, data []byte, chunk int, resync bool, h bridge.Handler) (summary, error) {
	var sum summary
	counter := bridge.HandlerFunc(func(m *bridge.Message) {
		sum.Frames++
		if h != nil {
			h.HandleMessage(m)
		}
	})
	var pending []byte
	off := 0
	for {
		if off < len(data) {
			n := len(data) - off
			if chunk > 0 && chunk < n {
				n = chunk
			}
			pending = append(pending, data[off:off+n]...)
			off += n
		}
		consumed, st := fr.ProcessInputData(bridge.DataBufOf(pending), counter)
		pending = pending[consumed:]
		if st != protocol.Success && st != protocol.NotEnoughData {
			sum.Errors++
			log.Warn().Str("status", st.String()).Int("pending", len(pending)).Msg("bad frame")
			if !resync {
				return sum, fmt.Errorf("decode %s: %w", fr.Name(), st.Err())
			}
			pending = pending[1:]
			continue
		}
		if off >= len(data) {
			sum.Trailing = len(pending)
			return sum, nil
		}
	}
}

func readInput(path, format string, stdin io.Reader) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if path == "" || path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if format == config.FormatBinary {
		return raw, nil
	}
	text := strings.Join(strings.Fields(string(raw)), "")
	data, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("decode hex input: %w", err)
	}
	return data, nil
}

func listCatalog(b *bridge.Bridge, out io.Writer) error {
	c := b.Catalog()
	for _, name := range c.FrameNames() {
		fr, err := b.Frame(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "frame   %s\n", fr)
	}
	for _, name := range c.MessageNames() {
		m, err := b.NewMessage(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "message %s id=%d fields=%s\n", name, uint64(m.ID()), strings.Join(m.FieldNames(), ","))
	}
	return nil
}

func printMetrics(out io.Writer) error {
	observability.RegisterMetrics()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "commsbind_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			c := m.GetCounter()
			if c == nil {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			fmt.Fprintf(out, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), c.GetValue())
		}
	}
	return nil
}
