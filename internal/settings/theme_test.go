package settings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
	"github.com/hiddenspringfield/shop-backend/pkg/types"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, enums.BackgroundTypeColor, d.BackgroundType)
	assert.Equal(t, "black", d.BackgroundColor)
	assert.Equal(t, "#000000", d.GradientFrom)
	assert.Equal(t, "#111111", d.GradientTo)
	assert.Equal(t, "HIDDEN SPINGFIELD", d.ShopName)
	assert.Equal(t, "NOUVEAU DROP", d.BannerText)
	assert.Equal(t, enums.ImageFitContain, d.BannerImageFit)
	assert.Equal(t, []string{SellerApu, SellerBurns, SellerMoe}, d.SellerNames())
}

func TestApplyLeavesAbsentFieldsAlone(t *testing.T) {
	base := Defaults()
	got := base.Apply(Patch{ShopName: Ptr("X")})
	assert.Equal(t, "X", got.ShopName)
	assert.Equal(t, base.BackgroundColor, got.BackgroundColor)
	assert.Equal(t, base.BannerSubtext, got.BannerSubtext)
	assert.Equal(t, "HIDDEN SPINGFIELD", base.ShopName, "Apply must not mutate the receiver")
}

func TestApplyKeepsInactiveBackgroundFields(t *testing.T) {
	s := Defaults().Apply(Patch{
		BackgroundType:  Ptr(enums.BackgroundTypeImage),
		BackgroundImage: Ptr("https://cdn/bg.png"),
	})
	s = s.Apply(Patch{BackgroundType: Ptr(enums.BackgroundTypeColor)})
	assert.Equal(t, "https://cdn/bg.png", s.BackgroundImage)
	assert.Equal(t, "black", s.BackgroundColor)
	assert.Equal(t, "#000000", s.GradientFrom)
}

func TestApplyMergesSellerLinksPerName(t *testing.T) {
	s := Defaults().Apply(Patch{SellerLinks: map[string]string{SellerBurns: "https://t.me/burns"}})
	s = s.Apply(Patch{SellerLinks: map[string]string{"lisa": "https://wa.me/33600000000"}})
	assert.Equal(t, "https://t.me/burns", s.SellerLinks[SellerBurns])
	assert.Equal(t, "https://wa.me/33600000000", s.SellerLinks["lisa"])
	assert.Contains(t, s.SellerLinks, SellerMoe)
}

func TestApplyReplacesSocialLinksWholesale(t *testing.T) {
	links := []types.SocialLink{{ID: "9", Name: "Snapchat", URL: "https://snapchat.com/add/x", Enabled: true}}
	s := Defaults().Apply(Patch{SocialLinks: &links})
	require.Len(t, s.SocialLinks, 1)
	links[0].Name = "mutated"
	assert.Equal(t, "Snapchat", s.SocialLinks[0].Name, "social links are copied")
}

func TestMergePrecedence(t *testing.T) {
	// defaults {a,b}, cache {b}, remote {c}: remote > cache > defaults
	state := Defaults()
	state = state.Apply(Patch{BannerText: Ptr("from cache")})
	state = state.Apply(Patch{OrderLink: Ptr("https://t.me/shop")})

	assert.Equal(t, "HIDDEN SPINGFIELD", state.ShopName)
	assert.Equal(t, "from cache", state.BannerText)
	assert.Equal(t, "https://t.me/shop", state.OrderLink)
}

func TestPatchJSONAbsentVersusEmpty(t *testing.T) {
	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`{"bannerImage":"","shopName":"Y"}`), &p))
	require.NotNil(t, p.BannerImage)
	assert.Nil(t, p.BackgroundColor)

	s := Defaults().Apply(Patch{BannerImage: Ptr("x")}).Apply(p)
	assert.Equal(t, "", s.BannerImage, "an explicit empty string is present and clears")
	assert.Equal(t, "Y", s.ShopName)
}

func TestAsPatchRoundTrip(t *testing.T) {
	src := Defaults().Apply(Patch{ShopName: Ptr("Round")})
	got := ThemeSettings{}.Apply(src.AsPatch())
	assert.Equal(t, src, got)
}

func TestPatchValidate(t *testing.T) {
	bad := enums.BackgroundType("video")
	err := Patch{BackgroundType: &bad}.Validate()
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	fit := enums.ImageFit("stretch")
	err = Patch{BannerImageFit: &fit}.Validate()
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	err = Patch{SellerLinks: map[string]string{"": "x"}}.Validate()
	assert.Error(t, err)

	assert.NoError(t, Defaults().AsPatch().Validate())
	assert.True(t, Patch{}.IsEmpty())
	assert.False(t, Patch{SellerLinks: map[string]string{"a": ""}}.IsEmpty())
}
