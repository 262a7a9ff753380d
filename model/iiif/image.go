package iiif

// Image API feature names, camelCase as they appear on the wire.
// https://iiif.io/api/image/3.0/#57-extra-functionality
type Feature string

const (
	FeatureBaseURIRedirect     Feature = "baseUriRedirect"
	FeatureCanonicalLinkHeader Feature = "canonicalLinkHeader"
	FeatureCors                Feature = "cors"
	FeatureJsonldMediaType     Feature = "jsonldMediaType"
	FeatureMirroring           Feature = "mirroring"
	FeatureProfileLinkHeader   Feature = "profileLinkHeader"
	FeatureRegionByPct         Feature = "regionByPct"
	FeatureRegionByPx          Feature = "regionByPx"
	FeatureRegionSquare        Feature = "regionSquare"
	FeatureRotationArbitrary   Feature = "rotationArbitrary"
	FeatureRotationBy90s       Feature = "rotationBy90s"
	FeatureSizeByConfinedWh    Feature = "sizeByConfinedWh"
	FeatureSizeByH             Feature = "sizeByH"
	FeatureSizeByPct           Feature = "sizeByPct"
	FeatureSizeByW             Feature = "sizeByW"
	FeatureSizeByWh            Feature = "sizeByWh"
	FeatureSizeUpscaling       Feature = "sizeUpscaling"

	// Deprecated in the Image API but still emitted by older servers.
	FeatureSizeByWhListed    Feature = "sizeByWhListed"
	FeatureSizeByForcedWh    Feature = "sizeByForcedWh"
	FeatureSizeAboveFull     Feature = "sizeAboveFull"
	FeatureSizeByDistortedWh Feature = "sizeByDistortedWh"
)

// Size is a pixel size as it appears in info.json sizes and tiles.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) Area() int {
	return s.Width * s.Height
}

// TileInfo is one entry of the info.json tiles array.
type TileInfo struct {
	Width        int   `json:"width"`
	Height       int   `json:"height"`
	ScaleFactors []int `json:"scaleFactors"`
}

// ProfileDetails is an expanded compliance profile.
type ProfileDetails struct {
	Formats   []string  `json:"formats"`
	Qualities []string  `json:"qualities"`
	Supports  []Feature `json:"supports"`
}

// Compliance level expansions shared by the v2 URLs and the v3 level
// strings. The deprecated sizeByWhListed stays first to keep level0
// meaningful for servers that only list sizes.
func levelProfile(level string) (ProfileDetails, bool) {
	switch level {
	case "level0":
		return ProfileDetails{
			Formats:   []string{"jpg"},
			Qualities: []string{"default"},
			Supports:  []Feature{FeatureSizeByWhListed},
		}, true
	case "level1":
		return ProfileDetails{
			Formats:   []string{"jpg"},
			Qualities: []string{"default"},
			Supports: []Feature{
				FeatureSizeByWhListed,
				FeatureBaseURIRedirect,
				FeatureCors,
				FeatureJsonldMediaType,
				FeatureRegionByPx,
				FeatureSizeByH,
				FeatureSizeByPct,
				FeatureSizeByW,
			},
		}, true
	case "level2":
		return ProfileDetails{
			Formats:   []string{"jpg", "png"},
			Qualities: []string{"default", "bitonal"},
			Supports: []Feature{
				FeatureSizeByWhListed,
				FeatureBaseURIRedirect,
				FeatureCors,
				FeatureJsonldMediaType,
				FeatureRegionByPx,
				FeatureSizeByH,
				FeatureSizeByPct,
				FeatureSizeByW,
				FeatureRegionByPct,
				FeatureRotationBy90s,
				FeatureSizeByConfinedWh,
				FeatureSizeByDistortedWh,
				FeatureSizeByForcedWh,
				FeatureSizeByWh,
			},
		}, true
	}
	return ProfileDetails{}, false
}
