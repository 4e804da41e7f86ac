package domain

// TotalFloors is the number of museum floors the map model covers. Floor 0 is
// the lower level ("LL" in the feed).
const TotalFloors = 4

// Gallery is one museum gallery. DisplayTitle is Title with the
// "Gallery "/"Galleries " prefix stripped.
type Gallery struct {
	ID           int64    `json:"id"`
	GalleryID    int64    `json:"gallery_id"`
	Title        string   `json:"title"`
	DisplayTitle string   `json:"display_title"`
	Location     Location `json:"location"`
	Closed       bool     `json:"closed"`
}

// AudioFileTranslation is the per-language payload of an audio file.
type AudioFileTranslation struct {
	TrackTitle string `json:"track_title"`
	URL        string `json:"url"`
	Transcript string `json:"transcript"`
}

// AudioFile is a narration track with per-language title/url/transcript.
// Translations always contains the English entry.
type AudioFile struct {
	ID           int64                              `json:"id"`
	Translations map[Language]AudioFileTranslation `json:"translations"`
}

// AudioCommentary links an audio file to an artwork, optionally with the
// selector number visitors key in on the audio guide hardware.
type AudioCommentary struct {
	SelectorNumber *int64    `json:"selector_number,omitempty"`
	AudioFile      AudioFile `json:"audio_file"`
}

// Object is one artwork. Its floor is inherited from its resolved gallery,
// never parsed independently.
type Object struct {
	ID                int64             `json:"id"`
	ObjectID          *int64            `json:"object_id,omitempty"`
	ThumbnailURL      string            `json:"thumbnail_url"`
	ThumbnailCropRect *Rect             `json:"thumbnail_crop_rect,omitempty"`
	ImageURL          string            `json:"image_url"`
	ImageCropRect     *Rect             `json:"image_crop_rect,omitempty"`
	Title             string            `json:"title"`
	AudioCommentaries []AudioCommentary `json:"audio_commentaries"`
	Tombstone         string            `json:"tombstone,omitempty"`
	Credits           string            `json:"credits,omitempty"`
	ImageCopyright    string            `json:"image_copyright,omitempty"`
	Location          Location          `json:"location"`
	Gallery           Gallery           `json:"gallery"`
}

// TourCategory groups tours; the link from a tour is soft.
type TourCategory struct {
	ID    string              `json:"id"`
	Title map[Language]string `json:"title"`
}

// TourStop is one stop on a tour, in feed "sort" order.
type TourStop struct {
	Order       int64      `json:"order"`
	Object      Object     `json:"object"`
	Audio       AudioFile  `json:"audio"`
	AudioBumper *AudioFile `json:"audio_bumper,omitempty"`
}

// TourTranslation is the per-language payload of a tour. LongDescription is
// the short description concatenated with the feed's intro text.
type TourTranslation struct {
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
	Duration         string `json:"duration,omitempty"`
	Credits          string `json:"credits"`
}

// Tour is an audio tour. A tour with zero valid stops never reaches the
// catalog.
type Tour struct {
	ID              int64                         `json:"id"`
	AudioCommentary AudioCommentary               `json:"audio_commentary"`
	Order           int64                         `json:"order"`
	Category        *TourCategory                 `json:"category,omitempty"`
	ImageURL        string                        `json:"image_url"`
	Location        Location                      `json:"location"`
	Stops           []TourStop                    `json:"stops"`
	Translations    map[Language]TourTranslation `json:"translations"`
}

// GeneralInfoTranslation carries the museum-wide localized copy.
type GeneralInfoTranslation struct {
	MuseumHours        string `json:"museum_hours"`
	HomeMemberPrompt   string `json:"home_member_prompt"`
	SeeAllToursIntro   string `json:"see_all_tours_intro"`
	AudioTitle         string `json:"audio_title"`
	AudioSubtitle      string `json:"audio_subtitle"`
	MapTitle           string `json:"map_title"`
	MapSubtitle        string `json:"map_subtitle"`
	InfoTitle          string `json:"info_title"`
	InfoSubtitle       string `json:"info_subtitle"`
	GiftShopsTitle     string `json:"gift_shops_title"`
	GiftShopsText      string `json:"gift_shops_text"`
	MembersLoungeTitle string `json:"members_lounge_title"`
	MembersLoungeText  string `json:"members_lounge_text"`
	RestroomsTitle     string `json:"restrooms_title"`
	RestroomsText      string `json:"restrooms_text"`
}

// GeneralInfo holds the localized museum-wide copy.
type GeneralInfo struct {
	Translations map[Language]GeneralInfoTranslation `json:"translations"`
}

// Restaurant is discovered from map annotations whose amenity type is Dining.
type Restaurant struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Location    Location `json:"location"`
}

// DataSetting keys the feed's endpoint/url settings block.
type DataSetting string

const (
	SettingImageServerURL       DataSetting = "image_server_url"
	SettingDataAPIURL           DataSetting = "data_api_url"
	SettingExhibitionsEndpoint  DataSetting = "exhibitions_endpoint"
	SettingArtworksEndpoint     DataSetting = "artworks_endpoint"
	SettingGalleriesEndpoint    DataSetting = "galleries_endpoint"
	SettingImagesEndpoint       DataSetting = "images_endpoint"
	SettingEventsEndpoint       DataSetting = "events_endpoint_v2"
	SettingAutocompleteEndpoint DataSetting = "autocomplete_endpoint"
	SettingToursEndpoint        DataSetting = "tours_endpoint"
	SettingMultiSearchEndpoint  DataSetting = "multisearch_endpoint"
	SettingWebsiteURL           DataSetting = "website_url"
	SettingMembershipURL        DataSetting = "membership_url"
	SettingTicketsURL           DataSetting = "tickets_url"
)

// DataSettingKeys lists the settings the feed must provide, in parse order.
var DataSettingKeys = []DataSetting{
	SettingImageServerURL,
	SettingDataAPIURL,
	SettingExhibitionsEndpoint,
	SettingArtworksEndpoint,
	SettingGalleriesEndpoint,
	SettingImagesEndpoint,
	SettingEventsEndpoint,
	SettingAutocompleteEndpoint,
	SettingToursEndpoint,
	SettingMultiSearchEndpoint,
	SettingWebsiteURL,
	SettingMembershipURL,
	SettingTicketsURL,
}

// Catalog is the fully-assembled, immutable snapshot of one feed parse.
type Catalog struct {
	GeneralInfo    GeneralInfo             `json:"general_info"`
	Galleries      []Gallery               `json:"galleries"`
	Objects        []Object                `json:"objects"`
	AudioFiles     []AudioFile             `json:"audio_files"`
	Tours          []Tour                  `json:"tours"`
	TourCategories []TourCategory          `json:"tour_categories"`
	Map            MapModel                `json:"map"`
	Restaurants    []Restaurant            `json:"restaurants"`
	DataSettings   map[DataSetting]string  `json:"data_settings"`
	SearchStrings  []string                `json:"search_strings"`
	SearchArtworks []Object                `json:"search_artworks"`
	Messages       []Message               `json:"messages"`
}
