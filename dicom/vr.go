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

// vrType groups Value Representations by how their payload is best rendered.
type vrType int

const (
	// textVR payloads are text padded with spaces.
	textVR vrType = iota

	// numberBinaryVR payloads are little endian binary numbers.
	numberBinaryVR

	// bulkDataVR payloads are large binary blobs or unlimited text.
	bulkDataVR

	// uniqueIdentifierVR payloads are UIDs padded with a null byte.
	uniqueIdentifierVR

	// sequenceVR payloads are nested sequences.
	sequenceVR

	// tagVR payloads are tags.
	tagVR
)

// VR is a DICOM Value Representation, identified by its 2-character code. The first two bytes of a
// Node's B hold such a code whenever the length is not direct, so a known code is a useful hint
// when inspecting a tree. It plays no part in classification.
type VR struct {
	// Name is the 2-character code.
	Name string

	kind vrType
}

// IsText is true for VRs whose payload is printable text.
func (vr *VR) IsText() bool {
	return vr.kind == textVR || vr.kind == uniqueIdentifierVR
}

func (vr *VR) String() string {
	return vr.Name
}

var vrLookupMap = map[string]*VR{}

func newVR(text string, kind vrType) *VR {
	vr := &VR{text, kind}
	vrLookupMap[vr.Name] = vr
	return vr
}

// VRHint returns the VR whose code is stored in the first two bytes of b.
func VRHint(b Tag) (*VR, bool) {
	code := b.Bytes()
	vr, ok := vrLookupMap[string(code[:2])]
	return vr, ok
}

// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
var (
	AEVR = newVR("AE", textVR)
	ASVR = newVR("AS", textVR)
	CSVR = newVR("CS", textVR)
	DAVR = newVR("DA", textVR)
	DSVR = newVR("DS", textVR)
	DTVR = newVR("DT", textVR)
	ISVR = newVR("IS", textVR)
	LOVR = newVR("LO", textVR)
	LTVR = newVR("LT", textVR)
	PNVR = newVR("PN", textVR)
	SHVR = newVR("SH", textVR)
	STVR = newVR("ST", textVR)
	TMVR = newVR("TM", textVR)

	FDVR = newVR("FD", numberBinaryVR)
	FLVR = newVR("FL", numberBinaryVR)
	SLVR = newVR("SL", numberBinaryVR)
	SSVR = newVR("SS", numberBinaryVR)
	ULVR = newVR("UL", numberBinaryVR)
	USVR = newVR("US", numberBinaryVR)

	OBVR = newVR("OB", bulkDataVR)
	ODVR = newVR("OD", bulkDataVR)
	OFVR = newVR("OF", bulkDataVR)
	OLVR = newVR("OL", bulkDataVR)
	OWVR = newVR("OW", bulkDataVR)
	UCVR = newVR("UC", bulkDataVR)
	UNVR = newVR("UN", bulkDataVR)
	URVR = newVR("UR", bulkDataVR)
	UTVR = newVR("UT", bulkDataVR)

	UIVR = newVR("UI", uniqueIdentifierVR)
	SQVR = newVR("SQ", sequenceVR)
	ATVR = newVR("AT", tagVR)
)
