package enums

import "testing"

func TestParseRoundTrips(t *testing.T) {
	if c, err := ParseProductCategory("hash"); err != nil || c != ProductCategoryHash {
		t.Fatalf("unexpected category parse %q %v", c, err)
	}
	if _, err := ParseProductCategory("edible"); err == nil {
		t.Fatal("expected unknown category to fail")
	}
	if b, err := ParseBackgroundType("gradient"); err != nil || !b.IsValid() {
		t.Fatalf("unexpected background parse %q %v", b, err)
	}
	if _, err := ParseImageFit("fill"); err == nil {
		t.Fatal("expected unknown image fit to fail")
	}
	if d, err := ParseCacheDomain("settings"); err != nil || d != CacheDomainSettings {
		t.Fatalf("unexpected domain parse %q %v", d, err)
	}
	if _, err := ParseSyncAction("purge"); err == nil {
		t.Fatal("expected unknown sync action to fail")
	}
}

func TestLinkKindSupportsTextParam(t *testing.T) {
	cases := map[LinkKind]bool{
		LinkKindTelegram:      true,
		LinkKindWhatsApp:      true,
		LinkKindClipboardOnly: false,
		LinkKindGeneric:       false,
	}
	for kind, want := range cases {
		if got := kind.SupportsTextParam(); got != want {
			t.Fatalf("%s: expected %v, got %v", kind, want, got)
		}
	}
}

func TestCacheDomainsReturnsCopy(t *testing.T) {
	domains := CacheDomains()
	domains[0] = "mutated"
	if CacheDomains()[0] != CacheDomainProducts {
		t.Fatal("expected CacheDomains to return a copy")
	}
}
