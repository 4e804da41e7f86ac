package app

import "aic_catalog/internal/domain"

// parseDataSettings reads the endpoint/url settings block in its declared
// order. A missing key is reported once and leaves the map partial; keys
// after the first missing one are not read.
func (r *parseRun) parseDataSettings(node map[string]any) (map[domain.DataSetting]string, error) {
	settings := make(map[domain.DataSetting]string, len(domain.DataSettingKeys))
	for _, key := range domain.DataSettingKeys {
		value, err := getString(node, string(key), false)
		if err != nil {
			r.report(wrap(KindInvalidDataSetting, err, node))
			break
		}
		settings[key] = value
	}
	return settings, nil
}
