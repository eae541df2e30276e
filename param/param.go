// Package param holds the reconstruction filter parameters.
package param

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultFrequency is the default acquisition frequency in Hz
	DefaultFrequency = 100.0
	// DefaultNoiseFactor is the default measurement noise level
	DefaultNoiseFactor = 1e-10
	// DefaultErrorFactor is the default initial state covariance level
	DefaultErrorFactor = 1e-5
)

// Params are immutable filter parameters.
// The zero value is not usable: create Params with New, Default or Load.
type Params struct {
	// freq is acquisition frequency in Hz
	freq float64
	// noise is measurement noise factor
	noise float64
	// err is initial covariance factor
	err float64
	// te is sampling period derived from freq
	te float64
}

// New creates new Params and returns it.
// Parameters are not validated: freq <= 0 yields a non-finite sampling period
// which then poisons every matrix derived from it.
func New(freq, noise, err float64) Params {
	return Params{
		freq:  freq,
		noise: noise,
		err:   err,
		te:    1.0 / freq,
	}
}

// Default returns default Params.
func Default() Params {
	return New(DefaultFrequency, DefaultNoiseFactor, DefaultErrorFactor)
}

// Frequency returns acquisition frequency in Hz.
func (p Params) Frequency() float64 { return p.freq }

// NoiseFactor returns measurement noise factor.
func (p Params) NoiseFactor() float64 { return p.noise }

// ErrorFactor returns initial state covariance factor.
func (p Params) ErrorFactor() float64 { return p.err }

// Period returns sampling period i.e. 1/Frequency.
func (p Params) Period() float64 { return p.te }

// String implements the Stringer interface.
func (p Params) String() string {
	return fmt.Sprintf("Params{Frequency=%g NoiseFactor=%g ErrorFactor=%g}", p.freq, p.noise, p.err)
}

// file is the YAML representation of Params
type file struct {
	Frequency   *float64 `yaml:"frequency"`
	NoiseFactor *float64 `yaml:"noise_factor"`
	ErrorFactor *float64 `yaml:"error_factor"`
}

// Load decodes YAML encoded parameters from r.
// Keys missing from the document keep their default values.
// It returns error if the document can not be decoded.
func Load(r io.Reader) (Params, error) {
	f := file{}
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return Params{}, fmt.Errorf("failed to decode parameters: %w", err)
	}

	freq, noise, errFactor := DefaultFrequency, DefaultNoiseFactor, DefaultErrorFactor
	if f.Frequency != nil {
		freq = *f.Frequency
	}
	if f.NoiseFactor != nil {
		noise = *f.NoiseFactor
	}
	if f.ErrorFactor != nil {
		errFactor = *f.ErrorFactor
	}

	return New(freq, noise, errFactor), nil
}

// LoadFile reads parameters from the YAML file at path.
func LoadFile(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, fmt.Errorf("failed to open parameters file: %w", err)
	}
	defer f.Close()

	return Load(f)
}
