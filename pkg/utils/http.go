package utils

import "io"

// maxErrorBody bounds how much of a failed response is kept for diagnostics.
const maxErrorBody = 64 << 10

// DrainAndClose closes the given ReadCloser.
func DrainAndClose(rc io.ReadCloser) error {
	if rc == nil {
		return nil
	}
	// Drain to let the transport reuse the connection.
	_, _ = io.Copy(io.Discard, rc)
	return rc.Close()
}

// ReadErrorBody reads at most 64KiB of a non-2xx response body, then drains and closes it.
func ReadErrorBody(rc io.ReadCloser) []byte {
	if rc == nil {
		return nil
	}
	bz, _ := io.ReadAll(io.LimitReader(rc, maxErrorBody))
	_ = DrainAndClose(rc)
	return bz
}
