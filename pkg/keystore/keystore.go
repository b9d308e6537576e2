// Package keystore persists hop account key material to disk so stranded
// funds can be recovered manually if a run dies partway through.
package keystore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const timestampFormat = "20060102_150405"

// Save writes the hop keypair as a two-line key=value file under dir,
// named with the creation timestamp. The file is readable by the owner
// only. Returns the path of the written file.
func Save(dir, pubkey, privkey string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create key directory %s: %v", dir, err)
	}

	name := fmt.Sprintf("hop_keys_%s.txt", time.Now().Format(timestampFormat))
	path := filepath.Join(dir, name)

	content := fmt.Sprintf("PUBKEY=%s\nPRIVKEY=%s\n", pubkey, privkey)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write key file %s: %v", path, err)
	}
	return path, nil
}

// Load reads a key file written by Save. Used by the manual recovery
// procedure for stranded hop accounts.
func Load(path string) (pubkey, privkey string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read key file %s: %v", path, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "PUBKEY="):
			pubkey = strings.TrimPrefix(line, "PUBKEY=")
		case strings.HasPrefix(line, "PRIVKEY="):
			privkey = strings.TrimPrefix(line, "PRIVKEY=")
		}
	}
	if pubkey == "" || privkey == "" {
		return "", "", fmt.Errorf("key file %s is missing PUBKEY or PRIVKEY", path)
	}
	return pubkey, privkey, nil
}
