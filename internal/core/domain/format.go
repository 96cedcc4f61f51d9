package domain

import "github.com/dustin/go-humanize"

// FormatSize renders a byte count with SI units.
// Sizes that are not fully known read "unknown size" or "at least <size>".
func FormatSize(bytes int64, known bool) string {
	if bytes < 0 {
		bytes = 0
	}
	text := humanize.Bytes(uint64(bytes))
	if known {
		return text
	}
	if bytes == 0 {
		return "unknown size"
	}
	return "at least " + text
}

// FormatDelta renders the current size of a record followed by the signed change since its baseline.
func FormatDelta(r AssetSizeRecord) string {
	text := FormatSize(r.Size, r.HasKnownSize)
	if r.Size == r.InitialSize {
		return text
	}

	diff := r.Size - r.InitialSize
	sign := "+"
	if diff < 0 {
		sign = "-"
		diff = -diff
	}
	return text + " (" + sign + FormatSize(diff, true) + ")"
}
