package rimage

// IFFTShift2D circularly shifts im by (floor(H/2), floor(W/2)), moving
// the DC-to-be component from the image center to index (0,0). This is
// the centering step the forward FFT convention expects.
func IFFTShift2D(im Image) Image {
	return circularShift2D(im, im.Size.Row/2, im.Size.Col/2)
}

// FFTShift2D circularly shifts im by (ceil(H/2), ceil(W/2)), the
// inverse of IFFTShift2D, moving the DC component back to the visual
// center of the image.
func FFTShift2D(im Image) Image {
	return circularShift2D(im, (im.Size.Row+1)/2, (im.Size.Col+1)/2)
}

func circularShift2D(im Image, rowShift, colShift int) Image {
	out := New(im.Size)
	h, w := im.Size.Row, im.Size.Col
	if h == 0 || w == 0 {
		return out
	}
	for i := 0; i < h; i++ {
		si := (i + rowShift) % h
		for j := 0; j < w; j++ {
			sj := (j + colShift) % w
			out.Set(si, sj, im.Get(i, j))
		}
	}
	return out
}

// ComputeFFTFreq returns the normalized FFT sample frequencies for an
// axis of length n. When half is true, only the non-negative half of
// the axis is returned ({0, 1/n, ..., floor(n/2)/n}, length
// floor(n/2)+1), matching the layout of a real-to-complex transform's
// halved axis. When half is false, the full FFT-shift-style axis is
// returned ({0, 1/n, ..., floor((n-1)/2)/n, -floor(n/2)/n, ..., -1/n},
// length n).
func ComputeFFTFreq(n int, half bool) []float64 {
	if half {
		freq := make([]float64, n/2+1)
		for i := range freq {
			freq[i] = float64(i) / float64(n)
		}
		return freq
	}

	freq := make([]float64, n)
	mid := (n - 1) / 2
	for i := 0; i <= mid; i++ {
		freq[i] = float64(i) / float64(n)
	}
	for i := mid + 1; i < n; i++ {
		freq[i] = float64(i-n) / float64(n)
	}
	return freq
}
