package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewInvoiceNumber generates a time-based unique invoice number.
func NewInvoiceNumber() string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("INV-%d-%s", time.Now().UnixMilli(), strings.ToUpper(suffix))
}
