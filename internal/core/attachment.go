package core

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// MaxAttachmentSize is the per-receipt ceiling, checked before encoding.
const MaxAttachmentSize = 2 << 20

// EncodeReceipt turns raw image bytes into the data URL stored on an expense.
func EncodeReceipt(data []byte) (string, error) {
	if len(data) > MaxAttachmentSize {
		return "", fmt.Errorf("%w: %s exceeds %s", ErrAttachmentTooLarge,
			humanize.IBytes(uint64(len(data))), humanize.IBytes(MaxAttachmentSize))
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrUnsupportedAttachment, mt.String())
	}
	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// AttachReceipt replaces the draft's receipt. On error the previous receipt
// stays in place.
func (d *ExpenseDraft) AttachReceipt(data []byte) error {
	encoded, err := EncodeReceipt(data)
	if err != nil {
		return err
	}
	d.ReceiptImage = encoded
	return nil
}

func (d *ExpenseDraft) ClearReceipt() {
	d.ReceiptImage = ""
}
