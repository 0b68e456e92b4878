package ffvideo

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/roiscope/pkg/ports"
)

// ErrNoVideoTrack is returned when an MP4 file has no video track.
var ErrNoVideoTrack = errors.New("ffvideo: no video track found")

// Probe reads the stream properties of an MP4/MOV file from its moov box
// and, for fragmented files, its fragments. Nothing is decoded.
func Probe(path string) (ports.SourceInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.SourceInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	info, err := ProbeReader(f)
	info.Path = path
	return info, err
}

// ProbeReader is Probe on an already opened file.
func ProbeReader(r io.ReadSeeker) (ports.SourceInfo, error) {
	mp4File, err := mp4.DecodeFile(r)
	if err != nil {
		return ports.SourceInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if mp4File.IsFragmented() && mp4File.Init != nil && mp4File.Init.Moov != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return ports.SourceInfo{}, fmt.Errorf("no moov box found")
	}

	trak := videoTrack(moov)
	if trak == nil {
		return ports.SourceInfo{}, ErrNoVideoTrack
	}

	var info ports.SourceInfo
	info.Codec, info.Width, info.Height = sampleEntry(trak)
	if info.Width == 0 || info.Height == 0 {
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}

	timescale := uint32(1000)
	if trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale > 0 {
		timescale = trak.Mdia.Mdhd.Timescale
	}

	var samples int
	var duration uint64
	if mp4File.IsFragmented() {
		samples, duration, err = fragmentSamples(mp4File, trak.Tkhd.TrackID)
		if err != nil {
			return info, err
		}
	} else {
		samples, duration = tableSamples(trak.Mdia.Minf.Stbl)
	}

	info.FrameCount = samples
	if samples > 0 && duration > 0 {
		info.FPS = float64(samples) * float64(timescale) / float64(duration)
	}
	return info, nil
}

func videoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
			continue
		}
		return trak
	}
	return nil
}

func sampleEntry(trak *mp4.TrakBox) (codec string, width, height int) {
	stsd := trak.Mdia.Minf.Stbl.Stsd
	if stsd == nil {
		return "", 0, 0
	}
	for _, child := range stsd.Children {
		codec = child.Type()
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			return codec, int(vse.Width), int(vse.Height)
		}
	}
	return codec, 0, 0
}

// tableSamples returns the sample count and total duration of a progressive track.
func tableSamples(stbl *mp4.StblBox) (int, uint64) {
	var samples int
	if stbl.Stsz != nil {
		samples = int(stbl.Stsz.SampleNumber)
	}

	var duration uint64
	if stbl.Stts != nil {
		for i, n := range stbl.Stts.SampleCount {
			duration += uint64(n) * uint64(stbl.Stts.SampleTimeDelta[i])
		}
	}
	return samples, duration
}

// fragmentSamples returns the sample count and total duration of a track
// across all fragments.
func fragmentSamples(mp4File *mp4.File, trackID uint32) (int, uint64, error) {
	var trex *mp4.TrexBox
	if mvex := mp4File.Init.Moov.Mvex; mvex != nil {
		for _, t := range mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var samples int
	var duration uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID != trackID {
					continue
				}
				full, err := frag.GetFullSamples(trex)
				if err != nil {
					return 0, 0, fmt.Errorf("get samples: %w", err)
				}
				for _, s := range full {
					duration += uint64(s.Dur)
				}
				samples += len(full)
			}
		}
	}
	return samples, duration, nil
}
