package datacite

// Response wraps a single DOI document, as returned by
// https://api.datacite.org/dois/{prefix}/{suffix}.
type Response struct {
	Data   *Document `json:"data"`
	Errors []struct {
		Status string `json:"status"`
		Title  string `json:"title"`
	} `json:"errors,omitempty"`
}

// Document is the subset of DOI metadata relevant for BIL datasets.
type Document struct {
	Attributes struct {
		CitationCount int64 `json:"citationCount"`
		Creators      []struct {
			Affiliation     []string `json:"affiliation"`
			FamilyName      string   `json:"familyName"`
			GivenName       string   `json:"givenName"`
			Name            string   `json:"name"`
			NameIdentifiers []struct {
				NameIdentifier       string `json:"nameIdentifier"`
				NameIdentifierScheme string `json:"nameIdentifierScheme"`
				SchemeUri            string `json:"schemeUri"`
			} `json:"nameIdentifiers"`
			NameType string `json:"nameType"`
		} `json:"creators"`
		Created           string `json:"created"`
		DOI               string `json:"doi"`
		DownloadCount     int64  `json:"downloadCount"`
		FundingReferences []struct {
			AwardNumber string `json:"awardNumber"`
			AwardTitle  string `json:"awardTitle"`
			FunderName  string `json:"funderName"`
		} `json:"fundingReferences"`
		PublicationYear int64  `json:"publicationYear"`
		Publisher       string `json:"publisher"`
		ReferenceCount  int64  `json:"referenceCount"`
		Registered      string `json:"registered"`
		State           string `json:"state"`
		Subjects        []struct {
			Subject string `json:"subject"`
		} `json:"subjects"`
		Titles []struct {
			Lang      string `json:"lang"`
			Title     string `json:"title"`
			TitleType string `json:"titleType"`
		} `json:"titles"`
		Types struct {
			ResourceType        string `json:"resourceType"`
			ResourceTypeGeneral string `json:"resourceTypeGeneral"`
		} `json:"types"`
		Updated   string `json:"updated"`
		URL       string `json:"url"`
		ViewCount int64  `json:"viewCount"`
	} `json:"attributes"`
	ID            string `json:"id"`
	Relationships struct {
		Client struct {
			Data struct {
				Id   string `json:"id"`
				Type string `json:"type"`
			} `json:"data"`
		} `json:"client"`
	} `json:"relationships"`
	Type string `json:"type"`
}

// Title returns the first title, if any.
func (d *Document) Title() string {
	if d == nil || len(d.Attributes.Titles) == 0 {
		return ""
	}
	return d.Attributes.Titles[0].Title
}
