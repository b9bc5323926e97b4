// Package charset converts byte buffers between a legacy regional charset
// (GBK unless configured otherwise) and UTF-8.
//
// Every conversion opens its own engine context and closes it before
// returning; nothing is cached between calls. Destination buffers are never
// written past their length: when the output does not fit the conversion
// fails with ErrOutputFull and the buffer content must not be trusted.
package charset

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zoro11031/d3l/internal/common"
	"github.com/zoro11031/d3l/internal/logging"
	"golang.org/x/text/transform"
)

const (
	// DefaultLegacy is the legacy side of ToUniversal/ToLegacy
	DefaultLegacy = "GBK"
	// Universal is the other side of every pinned conversion
	Universal = "utf-8"
)

// Transcoder converts between charsets using an Engine
type Transcoder struct {
	engine           Engine
	log              logrus.FieldLogger
	legacy           string
	toLegacyRatio    int
	toUniversalRatio int
}

// Option configures a Transcoder
type Option func(*Transcoder)

// WithEngine replaces the x/text engine
func WithEngine(e Engine) Option {
	return func(t *Transcoder) {
		t.engine = e
	}
}

// WithLegacy sets the legacy charset name
func WithLegacy(name string) Option {
	return func(t *Transcoder) {
		if name != "" {
			t.legacy = name
		}
	}
}

// WithRatios overrides the computed expansion ratios used to size buffers
// for ToLegacy and ToUniversal. Zero keeps the computed value.
func WithRatios(toLegacy, toUniversal int) Option {
	return func(t *Transcoder) {
		t.toLegacyRatio = toLegacy
		t.toUniversalRatio = toUniversal
	}
}

// New creates a Transcoder logging failures to log
func New(log logrus.FieldLogger, opts ...Option) *Transcoder {
	if log == nil {
		log = logging.Discard()
	}
	t := &Transcoder{
		engine: TextEngine{},
		log:    log,
		legacy: DefaultLegacy,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Legacy returns the configured legacy charset name
func (t *Transcoder) Legacy() string {
	return t.legacy
}

// Convert transcodes src from one charset to another into dst and returns the
// number of bytes produced. dst is zeroed before conversion starts, so bytes
// past the produced count are zero on success. If the engine cannot be opened
// dst is left untouched.
func (t *Transcoder) Convert(from, to string, src, dst []byte) (n int, err error) {
	ctx, err := t.engine.Open(from, to)
	if err != nil {
		t.log.WithFields(logrus.Fields{"from": from, "to": to}).WithError(err).Error("can't open conversion engine")
		return 0, common.NewError(common.KindEngineOpen, "convert", "", fmt.Errorf("%s to %s: %w", from, to, err))
	}
	defer func() {
		if cerr := ctx.Close(); cerr != nil && err == nil {
			err = common.NewError(common.KindConversion, "convert", "", cerr)
		}
	}()

	clear(dst)

	nDst, nSrc := 0, 0
	for nSrc < len(src) && nDst < len(dst) {
		nd, ns, cerr := ctx.Convert(dst[nDst:], src[nSrc:])
		nDst += nd
		nSrc += ns
		if cerr != nil {
			return nDst, t.conversionFailed(from, to, nSrc, cerr)
		}
		if nd == 0 && ns == 0 {
			break
		}
	}

	if nSrc < len(src) {
		return nDst, t.conversionFailed(from, to, nSrc, ErrOutputFull)
	}

	return nDst, nil
}

func (t *Transcoder) conversionFailed(from, to string, offset int, err error) error {
	switch {
	case errors.Is(err, transform.ErrShortDst):
		err = ErrOutputFull
	case errors.Is(err, transform.ErrShortSrc):
		err = ErrInvalidSequence
	}
	t.log.WithFields(logrus.Fields{"from": from, "to": to, "offset": offset}).WithError(err).Error("conversion failed")
	return common.NewError(common.KindConversion, "convert", "", fmt.Errorf("%s to %s at input offset %d: %w", from, to, offset, err))
}

// Transcode converts src into a new buffer of exactly capacity bytes. The
// output is followed by zero padding up to capacity.
func (t *Transcoder) Transcode(from, to string, src []byte, capacity int) ([]byte, error) {
	if err := common.ValidateCapacity(capacity); err != nil {
		return nil, common.NewError(common.KindConversion, "transcode", "", err)
	}

	dst := make([]byte, capacity)
	if _, err := t.Convert(from, to, src, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// ToLegacyInto converts UTF-8 src into the legacy charset in dst
func (t *Transcoder) ToLegacyInto(src, dst []byte) (int, error) {
	return t.Convert(Universal, t.legacy, src, dst)
}

// ToUniversalInto converts legacy src into UTF-8 in dst
func (t *Transcoder) ToUniversalInto(src, dst []byte) (int, error) {
	return t.Convert(t.legacy, Universal, src, dst)
}

// ToLegacy converts a UTF-8 string into the legacy charset
func (t *Transcoder) ToLegacy(s string) (string, error) {
	return t.convertString(Universal, t.legacy, s, t.toLegacyRatio)
}

// ToUniversal converts a legacy-encoded string into UTF-8
func (t *Transcoder) ToUniversal(s string) (string, error) {
	return t.convertString(t.legacy, Universal, s, t.toUniversalRatio)
}

// CapacityFor returns the buffer size needed to convert n bytes from -> to
func (t *Transcoder) CapacityFor(from, to string, n int) int {
	ratio := ExpansionRatio(from, to)
	if ratio == 0 {
		ratio = unboundedBytesPerRune
	}
	return n * ratio
}

func (t *Transcoder) convertString(from, to, s string, ratio int) (string, error) {
	capacity := t.CapacityFor(from, to, len(s))
	if ratio > 0 {
		capacity = len(s) * ratio
	}

	dst := make([]byte, capacity)
	n, err := t.Convert(from, to, []byte(s), dst)
	if err != nil {
		return "", err
	}
	return string(dst[:n]), nil
}
