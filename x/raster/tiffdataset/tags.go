package tiffdataset

// TIFF field tag IDs this adapter reads and writes, matching the same
// tag numbering the pack's COG writer keys its IFD struct fields on
// (see other_examples' airbusgeo/cogger IFD tag table).
const (
	tagImageWidth                = 256
	tagImageLength                = 257
	tagBitsPerSample              = 258
	tagCompression                = 259
	tagPhotometricInterpretation  = 262
	tagStripOffsets               = 273
	tagSamplesPerPixel            = 277
	tagRowsPerStrip               = 278
	tagStripByteCounts            = 279
	tagSampleFormat                = 339
	tagModelPixelScale            = 33550
	tagModelTiePoint              = 33922
	tagModelTransformation        = 34264
	tagGeoAsciiParams             = 34737
)

// TIFF field type codes (subset; this adapter only ever writes or
// expects SHORT, LONG, ASCII and DOUBLE fields).
const (
	typeByte   = 1
	typeASCII  = 2
	typeShort  = 3
	typeLong   = 4
	typeDouble = 12
)

var typeSize = map[uint16]int{
	typeByte:   1,
	typeASCII:  1,
	typeShort:  2,
	typeLong:   4,
	typeDouble: 8,
}

const (
	compressionNone      = 1
	photometricBlackZero = 1
	sampleFormatIEEEFP   = 3
)
