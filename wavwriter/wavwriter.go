// This file is part of Gopher64.
//
// Gopher64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher64.  If not, see <https://www.gnu.org/licenses/>.

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// when EndMixing() is called. It is therefore only suitable for short
// recordings.
//
// Samples are taken from the audio source at the requested sample rate by an
// event in the scheduler of the machine being recorded.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gopher64/curated"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
	"github.com/jetsetilly/gopher64/logger"
)

// Sentinal error patterns.
const (
	BadSampleRate = "wavwriter: bad sample rate (%d)"
	NotAttached   = "wavwriter: not attached to a scheduler"
)

// bit depth of the output file
const bitDepth = 16

// Source is the device being recorded.
type Source interface {
	// the current level of the audio signal
	Output() int16
}

// WavWriter samples a Source and encodes the samples as a mono WAV file.
type WavWriter struct {
	filename   string
	sampleRate int
	buffer     []int

	sch    *scheduler.Scheduler
	source Source
	sample *scheduler.Event

	// the number of CPU cycles between samples is not a whole number. the
	// fractional part is carried from one sample to the next
	cyclesPerSample float64
	accumulator     float64
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, sampleRate int) (*WavWriter, error) {
	if sampleRate <= 0 {
		return nil, curated.Errorf(BadSampleRate, sampleRate)
	}

	aw := &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]int, 0),
	}
	aw.sample = scheduler.NewEvent("wav sample", aw.takeSample)

	return aw, nil
}

// Attach the WavWriter to a scheduler. The source is sampled at the sample
// rate given to New(). The cpuFrequency argument is the number of cycles per
// second of the scheduler.
//
// Resetting the scheduler removes the sampling event. Attach() must be called
// again after a reset.
func (aw *WavWriter) Attach(sch *scheduler.Scheduler, source Source, cpuFrequency float64) error {
	cps := cpuFrequency / float64(aw.sampleRate)
	if cps < 1.0 {
		return curated.Errorf(BadSampleRate, aw.sampleRate)
	}

	if aw.sch != nil {
		aw.sch.Cancel(aw.sample)
	}

	aw.sch = sch
	aw.source = source
	aw.cyclesPerSample = cps
	aw.accumulator = 0
	aw.schedule()

	return nil
}

func (aw *WavWriter) schedule() {
	aw.accumulator += aw.cyclesPerSample
	n := int(aw.accumulator)
	aw.accumulator -= float64(n)
	aw.sch.Schedule(aw.sample, n, scheduler.PHI2)
}

func (aw *WavWriter) takeSample() {
	aw.buffer = append(aw.buffer, int(aw.source.Output()))
	aw.schedule()
}

// Samples returns the number of samples taken so far.
func (aw *WavWriter) Samples() int {
	return len(aw.buffer)
}

// EndMixing stops sampling and writes the buffered samples to the file.
func (aw *WavWriter) EndMixing() (rerr error) {
	if aw.sch == nil {
		return curated.Errorf(NotAttached)
	}
	aw.sch.Cancel(aw.sample)

	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, bitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	logger.Logf(logger.Allow, "wavwriter", "writing %d samples to %s", len(aw.buffer), aw.filename)

	err = enc.Write(buf)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	err = enc.Close()
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
