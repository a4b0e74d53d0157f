package supabase

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"
)

// Extension normalizes the uploaded filename's extension, defaulting to .png
// when the name carries none.
func Extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return ".png"
	}
	return ext
}

// ContentTypeFor guesses a content type from the filename extension.
func ContentTypeFor(filename string) string {
	ct := mime.TypeByExtension(Extension(filename))
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

// EntityImageKey builds object keys like "material_12_1719849600000.png".
func EntityImageKey(kind string, id int, filename string, now time.Time) string {
	return fmt.Sprintf("%s_%d_%d%s", kind, id, now.UnixMilli(), Extension(filename))
}

// OrderItemKey builds object keys like "order_item_1719849600000_0.png".
func OrderItemKey(index int, filename string, now time.Time) string {
	return fmt.Sprintf("order_item_%d_%d%s", now.UnixMilli(), index, Extension(filename))
}

// OrderLogoKey builds object keys like "order_logo_1719849600000_0.png".
// Logos keep their own prefix so an item's design and logo never collide
// even when both upload within the same millisecond.
func OrderLogoKey(index int, filename string, now time.Time) string {
	return fmt.Sprintf("order_logo_%d_%d%s", now.UnixMilli(), index, Extension(filename))
}

// PaymentImageKey builds object keys like "payment_<order-id>_1719849600000.png".
func PaymentImageKey(orderID string, filename string, now time.Time) string {
	return fmt.Sprintf("payment_%s_%d%s", orderID, now.UnixMilli(), Extension(filename))
}
