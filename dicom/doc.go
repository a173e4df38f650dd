// Package dicom parses DICOM-like files into a tree of tag/length/value records and writes the
// tree back byte for byte.
//
// The length field of a record is ambiguous at the byte level. After the 4-byte identifier A,
// the next 4 bytes B are either the payload length (Direct), a 2-character type code followed by
// a 2-byte length (TrailingWord), or a type code followed by a separate 4-byte length
// (Extended). No data dictionary is consulted. A Classifier decides between the three from
// tables of previously observed tags, and guesses TrailingWord for tags it does not know,
// reporting them so the tables can be extended.
//
// A typical round trip:
//
//	body, err := dicom.StripHeader(file)
//	nodes, diags := dicom.Parse(body)
//	diags = append(diags, dicom.Delineate(nodes)...)
//	for _, n := range dicom.Find(nodes, dicom.StructureSetROISequenceTag, dicom.ItemTag, dicom.ROINameTag) {
//		n.Payload = []byte("PAROTID ")
//	}
//	dicom.Invalidate(nodes)
//	dicom.Recompute(nodes)
//	out, _ := dicom.Repack(nodes)
//	file = append(dicom.Header(), out...)
//
// Only a missing or malformed header is an error. Truncated ranges, guessed layouts and other
// ambiguities are returned as Diagnostics and never stop a pass. All operations are synchronous
// and work on buffers held entirely in memory.
package dicom
