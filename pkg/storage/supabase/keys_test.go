package supabase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntityImageKey(t *testing.T) {
	now := time.UnixMilli(1719849600000)

	assert.Equal(t, "material_12_1719849600000.jpg", EntityImageKey("material", 12, "photo.JPG", now))
	assert.Equal(t, "variant_3_1719849600000.png", EntityImageKey("variant", 3, "no-extension", now))
}

func TestOrderAndPaymentKeys(t *testing.T) {
	now := time.UnixMilli(1719849600000)

	assert.Equal(t, "order_item_1719849600000_2.png", OrderItemKey(2, "design.png", now))
	assert.Equal(t, "order_logo_1719849600000_2.png", OrderLogoKey(2, "logo.png", now))
	assert.Equal(t, "payment_abc-123_1719849600000.jpeg", PaymentImageKey("abc-123", "proof.jpeg", now))
	assert.NotEqual(t, OrderItemKey(0, "a.png", now), OrderLogoKey(0, "a.png", now))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", ContentTypeFor("a.png"))
	assert.Equal(t, "image/jpeg", ContentTypeFor("a.jpg"))
	assert.Equal(t, "image/png", ContentTypeFor("noext"))
}
