package collectors

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/config"
	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/pipeline"
)

// StPaulPermits collects DSI building permits from the Saint Paul open data
// portal (Socrata API). The SoQL query is already filtered to the target
// ZIP codes, which is why the source is configured fully trusted.
type StPaulPermits struct {
	client *Client
}

func NewStPaulPermits(client *Client) *StPaulPermits {
	return &StPaulPermits{client: client}
}

func (s *StPaulPermits) Name() string {
	return "stpaul_permits"
}

func (s *StPaulPermits) Fetch(ctx context.Context, cfg *config.Config) ([]pipeline.Item, error) {
	source := cfg.Sources[s.Name()]
	if source.BaseURL == "" || source.DatasetID == "" {
		return nil, fmt.Errorf("stpaul_permits requires base_url and dataset_id")
	}

	queryURL, err := s.buildQueryURL(source, cfg.ZipCodes)
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := s.client.GetJSON(ctx, queryURL, &records); err != nil {
		return nil, fmt.Errorf("saint paul permits API: %w", err)
	}

	label := sourceLabel(cfg, s.Name(), "Saint Paul DSI")
	datasetURL := fmt.Sprintf("https://data.stpaul.gov/d/%s", source.DatasetID)

	items := make([]pipeline.Item, 0, len(records))
	for _, record := range records {
		item, ok := s.normalize(record, source, label, datasetURL)
		if !ok {
			continue
		}
		items = append(items, item)
	}

	slog.Debug("Saint Paul permits fetched", "records", len(records), "items", len(items))
	return items, nil
}

// buildQueryURL assembles the Socrata SoQL query: filter to the target ZIP
// codes, newest first, capped at the configured limit.
func (s *StPaulPermits) buildQueryURL(source config.SourceConfig, zipCodes []string) (string, error) {
	base, err := url.Parse(fmt.Sprintf("%s/%s.json", strings.TrimSuffix(source.BaseURL, "/"), source.DatasetID))
	if err != nil {
		return "", fmt.Errorf("invalid base_url: %w", err)
	}

	quoted := make([]string, len(zipCodes))
	for i, zip := range zipCodes {
		quoted[i] = "'" + zip + "'"
	}

	query := base.Query()
	if len(quoted) > 0 && source.ZipField != "" {
		query.Set("$where", fmt.Sprintf("%s in (%s)", source.ZipField, strings.Join(quoted, ", ")))
	}
	if source.DateField != "" {
		query.Set("$order", source.DateField+" DESC")
	}
	query.Set("$limit", strconv.Itoa(source.Limit))
	base.RawQuery = query.Encode()

	return base.String(), nil
}

func (s *StPaulPermits) normalize(record map[string]any, source config.SourceConfig, label, datasetURL string) (pipeline.Item, bool) {
	address := strings.TrimSpace(stringField(record, source.AddressField))
	permitType := strings.TrimSpace(stringField(record, source.TypeField))
	if address == "" && permitType == "" {
		return pipeline.Item{}, false
	}

	permitNum := firstNonEmpty(
		stringField(record, "permit_number"),
		stringField(record, "permit_no"),
		stringField(record, "id"),
	)

	date := parseDate(stringField(record, source.DateField))
	if date == "" {
		date = currentDate()
	}

	title := fmt.Sprintf("%s — %s",
		firstNonEmpty(permitType, "Permit"),
		firstNonEmpty(address, "Address unknown"))
	if permitNum != "" {
		title += fmt.Sprintf(" (#%s)", permitNum)
	}

	var descParts []string
	for _, field := range []string{"work_description", "contractor_name", "owner_name", "status"} {
		if value := strings.TrimSpace(stringField(record, field)); value != "" {
			descParts = append(descParts, fmt.Sprintf("%s: %s", humanizeField(field), value))
		}
	}
	description := permitType
	if len(descParts) > 0 {
		description = strings.Join(descParts, " | ")
	}

	return pipeline.Item{
		Title:       title,
		Description: description,
		Date:        date,
		Source:      label,
		SourceKey:   s.Name(),
		Category:    pipeline.CategoryPermit,
		Address:     address,
		URL:         datasetURL,
		Raw: map[string]string{
			"permit_number": permitNum,
			"permit_type":   permitType,
		},
	}, true
}

func stringField(record map[string]any, field string) string {
	if field == "" {
		return ""
	}
	if value, ok := record[field].(string); ok {
		return value
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// humanizeField turns a Socrata column name into a display label
// ("work_description" -> "Work Description").
func humanizeField(field string) string {
	words := strings.Split(field, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
