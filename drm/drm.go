// Package drm enumerates display connectors using sysfs.
package drm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// StatusGlob matches the status file of every DRM connector.
const StatusGlob = "/sys/class/drm/*/status"

// Connector is a connected DRM connector.
type Connector struct {
	Name    string // e.g., card0-eDP-1
	Monitor string // from the EDID, empty if unavailable
}

// Connected returns the names of the connectors whose status file (matched by
// pattern, usually [StatusGlob]) starts with "connected", sorted. The name is
// the directory containing the status file. Unreadable status files are
// skipped.
func Connected(pattern string) ([]string, error) {
	fns, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("list drm connectors: %w", err)
	}
	var names []string
	for _, fn := range fns {
		buf, err := os.ReadFile(fn)
		if err != nil {
			continue
		}
		if bytes.HasPrefix(buf, []byte("connected")) {
			names = append(names, filepath.Base(filepath.Dir(fn)))
		}
	}
	slices.Sort(names)
	return names, nil
}

// Connectors is like [Connected], but also identifies the monitor attached
// to each connector using the edid file next to the status file.
func Connectors(pattern string) ([]Connector, error) {
	names, err := Connected(pattern)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(filepath.Dir(pattern))
	cs := make([]Connector, len(names))
	for i, name := range names {
		cs[i].Name = name
		buf, err := os.ReadFile(filepath.Join(dir, name, "edid"))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read %s edid: %w", name, err)
			}
			continue
		}
		cs[i].Monitor, _ = MonitorID(buf)
	}
	return cs, nil
}

// MonitorID formats the PNP vendor, product code, and serial from an EDID
// (e.g., ACRE70C-A55C5042).
func MonitorID(edid []byte) (string, bool) {
	// https://en.wikipedia.org/wiki/Extended_Display_Identification_Data
	if !bytes.HasPrefix(edid, []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}) {
		return "", false // bad header
	}
	if len(edid) < 16 {
		return "", false // too short
	}
	const hex = "0123456789ABCDEF"
	vnd := binary.BigEndian.Uint16(edid[8:10])
	b := make([]byte, 0, 16)
	for shift := 10; shift >= 0; shift -= 5 {
		b = append(b, 'A'-1+byte(0b11111&(vnd>>shift)))
	}
	for _, x := range edid[10:12] {
		b = append(b, hex[x>>4], hex[x&0xf])
	}
	b = append(b, '-')
	for _, x := range edid[12:16] {
		b = append(b, hex[x>>4], hex[x&0xf])
	}
	return string(b), true
}
