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

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopher64/curated"
	"github.com/jetsetilly/gopher64/govern"
	"github.com/jetsetilly/gopher64/hardware"
	"github.com/jetsetilly/gopher64/hardware/memory/memorymap"
	"github.com/jetsetilly/gopher64/hardware/sid"
	"github.com/jetsetilly/gopher64/loader"
	"github.com/jetsetilly/gopher64/logger"
	"github.com/jetsetilly/gopher64/modalflag"
	"github.com/jetsetilly/gopher64/performance"
	"github.com/jetsetilly/gopher64/prefs"
	"github.com/jetsetilly/gopher64/statsview"
	"github.com/jetsetilly/gopher64/version"
	"github.com/jetsetilly/gopher64/wavwriter"
	"golang.org/x/term"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "TRACE", "PERFORMANCE")
	md.AdditionalHelp(version.String())
	showVersion := md.AddBool("version", false, "print version and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// ctrl-c ends the emulation at the next check
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	switch md.Mode() {
	case "RUN":
		err = run(md, intChan)
	case "TRACE":
		err = trace(md, intChan)
	case "PERFORMANCE":
		err = perform(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(20)
	}
}

// machineFlags are the flags common to every mode
type machineFlags struct {
	model   *string
	kernal  *string
	basic   *string
	chargen *string
	prefs   *string
	log     *bool
	sidlog  *string
	tune    tuneFlags
}

type tuneFlags struct {
	load   *uint16
	init   *uint16
	play   *uint16
	song   *int
	compat *string
	speed  *string
}

func addMachineFlags(md *modalflag.Modes) *machineFlags {
	return &machineFlags{
		model:   md.AddString("model", "", "C64 model: PAL-B, NTSC-M, OLD-NTSC-M, PAL-N, PAL-M"),
		kernal:  md.AddString("kernal", "", "kernal ROM image (8192 bytes)"),
		basic:   md.AddString("basic", "", "BASIC ROM image (8192 bytes)"),
		chargen: md.AddString("chargen", "", "character generator ROM image (4096 bytes)"),
		prefs:   md.AddString("prefs", "", "preferences to apply (eg. \"c64.cia.model::8521\")"),
		log:     md.AddBool("log", false, "echo log to stderr"),
		sidlog:  md.AddString("sidlog", "", "write every SID register write to file"),
		tune: tuneFlags{
			load:   md.AddAddress("load", 0, "load address. the first two bytes of the file are used if not specified"),
			init:   md.AddAddress("init", 0, "address of init routine. defaults to the load address"),
			play:   md.AddAddress("play", 0, "address of play routine. zero if the tune installs its own interrupt"),
			song:   md.AddInt("song", 1, "song number"),
			compat: md.AddString("compat", "C64", "compatibility: C64, R64, BASIC"),
			speed:  md.AddString("speed", "VBI", "play routine speed: VBI, CIA"),
		},
	}
}

// tuneFromData creates the tune from the file data and the command line flags
func tuneFromData(data []uint8, f tuneFlags) (loader.Tune, error) {
	var tune loader.Tune
	var err error

	if *f.load == 0 {
		tune, err = loader.LoadPRG(data)
		if err != nil {
			return tune, err
		}
	} else {
		tune.Data = data
		tune.LoadAddr = *f.load
	}

	if *f.init != 0 {
		tune.InitAddr = *f.init
	}
	tune.PlayAddr = *f.play

	if *f.song < 1 || *f.song > 256 {
		return tune, curated.Errorf("song number must be between 1 and 256 (%d)", *f.song)
	}
	tune.Song = uint8(*f.song - 1)

	switch strings.ToUpper(*f.compat) {
	case "C64":
		tune.Compatibility = loader.C64
	case "R64":
		tune.Compatibility = loader.R64
	case "BASIC":
		tune.Compatibility = loader.BASIC
	default:
		return tune, curated.Errorf("unknown compatibility (%s)", *f.compat)
	}

	switch strings.ToUpper(*f.speed) {
	case "VBI":
		tune.Speed = loader.SpeedVBI
	case "CIA":
		tune.Speed = loader.SpeedCIA
	default:
		return tune, curated.Errorf("unknown speed (%s)", *f.speed)
	}

	return tune, nil
}

// machine is the C64 prepared for a mode
type machine struct {
	c64    *hardware.C64
	sidlog *bufio.Writer
	close  func() error
}

// end flushes and closes the sidlog. it is safe to call more than once
func (m *machine) end() error {
	var err error
	if m.sidlog != nil {
		err = m.sidlog.Flush()
		m.sidlog = nil
	}
	if m.close != nil {
		if cerr := m.close(); err == nil {
			err = cerr
		}
		m.close = nil
	}
	return err
}

// endMachine is deferred by the modes once the machine has been set up. the
// error from ending the machine is only returned if there is no other error
func endMachine(mc *machine, err *error) {
	if endErr := mc.end(); *err == nil {
		*err = endErr
	}
}

func setup(md *modalflag.Modes, flgs *machineFlags) (*machine, error) {
	if *flgs.log {
		if term.IsTerminal(int(os.Stderr.Fd())) {
			logger.SetEcho(logger.NewColorizer(os.Stderr))
		} else {
			logger.SetEcho(os.Stderr)
		}
	}

	if len(md.RemainingArgs()) == 0 {
		return nil, fmt.Errorf("tune required for %s mode", md)
	}
	if len(md.RemainingArgs()) > 1 {
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	if *flgs.prefs != "" {
		prefs.PushCommandLineStack(*flgs.prefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "prefs", "unused preferences: %s", unused)
			}
		}()
	}

	c64, err := hardware.NewC64(nil)
	if err != nil {
		return nil, err
	}

	if *flgs.model != "" {
		m, err := hardware.ParseModel(*flgs.model)
		if err != nil {
			return nil, err
		}
		c64.SetModel(m)
	}

	roms := []struct {
		filename string
		set      func([]uint8) error
	}{
		{*flgs.kernal, c64.Mem.SetKernal},
		{*flgs.basic, c64.Mem.SetBasic},
		{*flgs.chargen, c64.Mem.SetCharacter},
	}
	for _, r := range roms {
		if r.filename == "" {
			continue
		}
		f := loader.NewFile(r.filename)
		if err := f.Load(); err != nil {
			return nil, err
		}
		if err := r.set(f.Data); err != nil {
			return nil, err
		}
	}

	mc := &machine{c64: c64}

	var log io.Writer
	if *flgs.sidlog != "" {
		f, err := os.Create(*flgs.sidlog)
		if err != nil {
			return nil, err
		}
		mc.sidlog = bufio.NewWriter(f)
		mc.close = f.Close
		log = mc.sidlog
	}
	c64.SetBaseSID(sid.NewRecorder("d400", c64.Scheduler, log))

	if err := installTune(c64, md.GetArg(0), flgs.tune); err != nil {
		_ = mc.end()
		return nil, err
	}

	return mc, nil
}

func installTune(c64 *hardware.C64, filename string, flgs tuneFlags) error {
	f := loader.NewFile(filename)
	if err := f.Load(); err != nil {
		return err
	}

	tune, err := tuneFromData(f.Data, flgs)
	if err != nil {
		return err
	}

	return loader.Install(c64, tune)
}

// interrupted checks for ctrl-c without blocking
func interrupted(intChan chan os.Signal) bool {
	select {
	case <-intChan:
		return true
	default:
	}
	return false
}

func run(md *modalflag.Modes, intChan chan os.Signal) (err error) {
	md.NewMode()

	flgs := addMachineFlags(md)
	seconds := md.AddFloat64("seconds", 60, "length of emulated time to run for")
	wav := md.AddString("wav", "", "record audio to wav file")
	sampleRate := md.AddInt("samplerate", 44100, "sample rate of wav file")
	memvizFile := md.AddString("memviz", "", "write graphviz dot file of the C64 after running")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		stop := statsview.Launch(os.Stdout)
		defer stop()
	}

	mc, err := setup(md, flgs)
	if err != nil {
		return err
	}
	defer endMachine(mc, &err)
	c64 := mc.c64

	var aw *wavwriter.WavWriter
	if *wav != "" {
		aw, err = wavwriter.New(*wav, *sampleRate)
		if err != nil {
			return err
		}
		err = aw.Attach(c64.Scheduler, c64, c64.CPUFrequency())
		if err != nil {
			return err
		}
	}

	target := int64(*seconds * c64.CPUFrequency())
	brake := 0

	err = c64.Run(func() (govern.State, error) {
		brake++
		if brake < hardware.PerformanceBrake {
			return govern.Running, nil
		}
		brake = 0
		if interrupted(intChan) || c64.Time() >= target {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	if err != nil {
		return err
	}

	logger.Logf(logger.Allow, "gopher64", "ran for %.2f seconds (%d cycles)", c64.Seconds(), c64.Time())

	if aw != nil {
		if err := aw.EndMixing(); err != nil {
			return err
		}
	}

	if *memvizFile != "" {
		f, err := os.Create(*memvizFile)
		if err != nil {
			return err
		}
		memviz.Map(f, c64)
		if err := f.Close(); err != nil {
			return err
		}
	}

	return nil
}

func trace(md *modalflag.Modes, intChan chan os.Signal) (err error) {
	md.NewMode()

	flgs := addMachineFlags(md)
	instructions := md.AddInt("instructions", 1000, "number of instructions to trace")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	mc, err := setup(md, flgs)
	if err != nil {
		return err
	}
	defer endMachine(mc, &err)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	return traceInstructions(out, mc.c64, *instructions, func() bool {
		return interrupted(intChan)
	})
}

// traceInstructions steps the C64 for n instructions or until stop returns
// true. every instruction is printed with the bank it was fetched from. the
// memory map is printed at the start and whenever the CPU port changes it
func traceInstructions(out io.Writer, c64 *hardware.C64, n int, stop func() bool) error {
	port := c64.Mem.CPUPort()
	fmt.Fprintf(out, "memory map (port %d)\n%s", port, memorymap.Summary(port))

	for i := 0; i < n && !stop(); i++ {
		bank := c64.Mem.ReadBank(c64.CPU.PC.Address())
		if err := c64.Step(nil); err != nil {
			return err
		}
		fmt.Fprintf(out, "%8d %-6s %s\n", c64.Time(), bank, c64.CPU.LastResult.String())

		if c64.Mem.CPUPort() != port {
			port = c64.Mem.CPUPort()
			fmt.Fprintf(out, "memory map (port %d)\n%s", port, memorymap.Summary(port))
		}
	}

	return nil
}

func perform(md *modalflag.Modes) (err error) {
	md.NewMode()

	flgs := addMachineFlags(md)
	duration := md.AddDuration("duration", 5*time.Second, "real time to measure for")
	profile := md.AddString("profile", "none", "profiles to write: CPU, MEM, TRACE (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	mc, err := setup(md, flgs)
	if err != nil {
		return err
	}
	defer endMachine(mc, &err)

	_, err = performance.Check(os.Stdout, prf, mc.c64, 2*time.Second, *duration)
	return err
}
