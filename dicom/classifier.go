// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

// LengthMode describes which bytes of, or after, a Node's B field hold the payload length.
type LengthMode int

const (
	// Direct means all 4 bytes of B are the payload length.
	Direct LengthMode = iota

	// TrailingWord means the first 2 bytes of B are a type code and the trailing 2 bytes are
	// the payload length.
	TrailingWord

	// Extended means B is followed by a separate 4-byte payload length.
	Extended
)

func (m LengthMode) String() string {
	switch m {
	case Direct:
		return "direct"
	case TrailingWord:
		return "trailing-word"
	case Extended:
		return "extended"
	default:
		return "unknown"
	}
}

const (
	tagSize = 4

	// directOverhead is the header size of Direct and TrailingWord nodes: A and B.
	directOverhead = 2 * tagSize

	// extendedOverhead adds the separate 4-byte length of Extended nodes.
	extendedOverhead = directOverhead + 4

	// minExpandableSize is the smallest payload that can hold a nested A and B.
	minExpandableSize = directOverhead
)

// Tags with a known layout, found by inspecting RTSTRUCT and CT files.
var (
	FileMetaInformationGroupLengthTag     = NewTag(0x0002, 0x0000)
	FileMetaInformationVersionTag         = NewTag(0x0002, 0x0001)
	MediaStorageSOPClassUIDTag            = NewTag(0x0002, 0x0002)
	MediaStorageSOPInstanceUIDTag         = NewTag(0x0002, 0x0003)
	TransferSyntaxUIDTag                  = NewTag(0x0002, 0x0010)
	ImplementationClassUIDTag             = NewTag(0x0002, 0x0012)
	ReferencedFrameOfReferenceSequenceTag = NewTag(0x3006, 0x0010)
	RTReferencedStudySequenceTag          = NewTag(0x3006, 0x0012)
	RTReferencedSeriesSequenceTag         = NewTag(0x3006, 0x0014)
	ContourImageSequenceTag               = NewTag(0x3006, 0x0016)
	StructureSetROISequenceTag            = NewTag(0x3006, 0x0020)
	ROINameTag                            = NewTag(0x3006, 0x0026)
	ROIContourSequenceTag                 = NewTag(0x3006, 0x0039)
	ContourSequenceTag                    = NewTag(0x3006, 0x0040)
	ContourDataTag                        = NewTag(0x3006, 0x0050)
	PixelDataTag                          = NewTag(0x7FE0, 0x0010)
	ItemTag                               = NewTag(0xFFFE, 0xE000)
)

// builtinLengthNotDirect lists tags whose answer to LengthIsNotDirect is fixed regardless of B.
// Tags not listed fall through to the printable type code check.
var builtinLengthNotDirect = map[Tag]bool{
	// "OB" type code followed by two reserved bytes and a separate length.
	FileMetaInformationVersionTag: true,

	// Stringified contour points ("1.23\2.34\-5.56\..."). Long enough that the length bytes
	// often look like text.
	ContourDataTag: false,

	// Sequence items and sequences carry a plain 4-byte length.
	ItemTag:                               false,
	RTReferencedStudySequenceTag:          false,
	ContourSequenceTag:                    false,
	ReferencedFrameOfReferenceSequenceTag: false,
	ROIContourSequenceTag:                 false,
	ContourImageSequenceTag:               false,
	RTReferencedSeriesSequenceTag:         false,

	// Image data.
	PixelDataTag: false,
}

// builtinTrailingWordLength lists tags whose B is a type code followed by a 2-byte length.
// These appear in the file meta header.
var builtinTrailingWordLength = []Tag{
	FileMetaInformationGroupLengthTag,
	MediaStorageSOPClassUIDTag,
	MediaStorageSOPInstanceUIDTag,
	TransferSyntaxUIDTag,
	ImplementationClassUIDTag,
}

// builtinExtendedLength lists tags whose B is followed by a separate 4-byte length.
var builtinExtendedLength = []Tag{
	FileMetaInformationVersionTag,
}

// builtinAlwaysExpand lists tags whose payload is a nested sequence even though its first byte is
// printable.
var builtinAlwaysExpand = []Tag{
	ItemTag,
}

// builtinNeverExpand lists tags whose payload merely resembles a nested sequence.
var builtinNeverExpand = []Tag{
	FileMetaInformationVersionTag,
	FileMetaInformationGroupLengthTag,
	PixelDataTag,
}

// Rules extends the built-in classification tables. Later entries win over earlier ones and over
// the built-ins.
type Rules struct {
	// Direct forces LengthIsNotDirect to false.
	Direct []Tag
	// NotDirect forces LengthIsNotDirect to true.
	NotDirect []Tag
	// TrailingWord adds tags to the trailing 2-byte length whitelist.
	TrailingWord []Tag
	// Extended adds tags to the separate 4-byte length whitelist.
	Extended []Tag
	// AlwaysExpand adds tags that are expanded even when their payload starts with text.
	AlwaysExpand []Tag
	// NeverExpand adds tags that are never expanded.
	NeverExpand []Tag
}

// Classifier decides the length mode of a tag pair and whether a Node's payload should be
// delineated. A Classifier is immutable once created and safe for concurrent use.
type Classifier struct {
	lengthNotDirect    map[Tag]bool
	trailingWordLength map[Tag]bool
	extendedLength     map[Tag]bool
	alwaysExpand       map[Tag]bool
	neverExpand        map[Tag]bool
}

// DefaultClassifier uses only the built-in tables.
var DefaultClassifier = NewClassifier()

// NewClassifier returns a Classifier seeded with the built-in tables and extended by rules in the
// order given.
func NewClassifier(rules ...Rules) *Classifier {
	c := &Classifier{
		lengthNotDirect:    map[Tag]bool{},
		trailingWordLength: set(builtinTrailingWordLength),
		extendedLength:     set(builtinExtendedLength),
		alwaysExpand:       set(builtinAlwaysExpand),
		neverExpand:        set(builtinNeverExpand),
	}
	for tag, v := range builtinLengthNotDirect {
		c.lengthNotDirect[tag] = v
	}

	for _, r := range rules {
		for _, tag := range r.Direct {
			c.lengthNotDirect[tag] = false
		}
		for _, tag := range r.NotDirect {
			c.lengthNotDirect[tag] = true
		}
		for _, tag := range r.TrailingWord {
			c.trailingWordLength[tag] = true
			delete(c.extendedLength, tag)
		}
		for _, tag := range r.Extended {
			c.extendedLength[tag] = true
			delete(c.trailingWordLength, tag)
		}
		for _, tag := range r.AlwaysExpand {
			c.alwaysExpand[tag] = true
			delete(c.neverExpand, tag)
		}
		for _, tag := range r.NeverExpand {
			c.neverExpand[tag] = true
			delete(c.alwaysExpand, tag)
		}
	}
	return c
}

func set(tags []Tag) map[Tag]bool {
	m := make(map[Tag]bool, len(tags))
	for _, t := range tags {
		m[t] = true
	}
	return m
}

// LengthIsNotDirect is true when the 4 bytes of b are not simply the payload length.
func (c *Classifier) LengthIsNotDirect(a, b Tag) bool {
	if v, ok := c.lengthNotDirect[a]; ok {
		return v
	}
	// Two printable bytes look like a type code (UL, OB, CS, ...), not a length.
	code := b.Bytes()
	return isPrintable(code[0]) && isPrintable(code[1])
}

// TrailingTwoBytesAreLength is true when the trailing 2 bytes of b are the payload length.
func (c *Classifier) TrailingTwoBytesAreLength(a, b Tag) bool {
	return c.trailingWordLength[a]
}

// NextFourBytesAreLength is true when b is followed by a separate 4-byte payload length.
func (c *Classifier) NextFourBytesAreLength(a, b Tag) bool {
	return c.extendedLength[a]
}

// Mode returns the length mode of the tag pair. When no table decides the mode, TrailingWord is
// returned as a best guess and guessed is true.
func (c *Classifier) Mode(a, b Tag) (mode LengthMode, guessed bool) {
	if !c.LengthIsNotDirect(a, b) {
		return Direct, false
	}
	if c.TrailingTwoBytesAreLength(a, b) {
		return TrailingWord, false
	}
	if c.NextFourBytesAreLength(a, b) {
		return Extended, false
	}
	return TrailingWord, true
}

// Overhead returns the size of the tag/length header written before a payload in the given mode.
func Overhead(mode LengthMode) int64 {
	if mode == Extended {
		return extendedOverhead
	}
	return directOverhead
}

// IsExpandable is true if n is a leaf whose payload should be parsed as a nested sequence.
func (c *Classifier) IsExpandable(n *Node) bool {
	if len(n.Payload) < minExpandableSize || len(n.Children) != 0 {
		return false
	}
	if isPrintable(n.Payload[0]) && !c.alwaysExpand[n.A] {
		return false
	}
	return !c.neverExpand[n.A]
}

func isPrintable(b byte) bool {
	return b >= 32 && b <= 126
}
