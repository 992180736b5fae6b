package selectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapportal/internal/catalog/models"
	"mapportal/internal/knownlayer"
)

func classify(t *testing.T, s knownlayer.Selector, r *models.Record) knownlayer.Relation {
	t.Helper()
	rel, err := s.IsRelatedRecord(r)
	require.NoError(t, err)
	return rel
}

func TestIdentifierSelector(t *testing.T) {
	s := NewIdentifierSelector([]string{" rec-1 "}, []string{"rec-2", "rec-1"})

	assert.Equal(t, knownlayer.Belongs, classify(t, s, &models.Record{Identifier: "rec-1"}))
	assert.Equal(t, knownlayer.Related, classify(t, s, &models.Record{Identifier: "rec-2"}))
	assert.Equal(t, knownlayer.NotRelated, classify(t, s, &models.Record{Identifier: "REC-1"}))
}

func TestKeywordSelector(t *testing.T) {
	s := NewKeywordSelector([]string{"Boreholes"}, []string{"geology"})

	t.Run("belongs wins over related", func(t *testing.T) {
		r := &models.Record{Keywords: []string{"GEOLOGY", " boreholes"}}
		assert.Equal(t, knownlayer.Belongs, classify(t, s, r))
	})

	t.Run("related keyword only", func(t *testing.T) {
		r := &models.Record{Keywords: []string{"Geology"}}
		assert.Equal(t, knownlayer.Related, classify(t, s, r))
	})

	t.Run("no keywords", func(t *testing.T) {
		assert.Equal(t, knownlayer.NotRelated, classify(t, s, &models.Record{}))
	})
}

func TestOnlineResourceSelector(t *testing.T) {
	wfs := func(url, name string) models.OnlineResource {
		return models.OnlineResource{URL: url, Name: name, Protocol: models.ProtocolWFS}
	}

	t.Run("matches protocol and name", func(t *testing.T) {
		s := NewOnlineResourceSelector(OnlineResourceConfig{
			Protocol:          models.ProtocolWFS,
			LayerNames:        []string{"gsml:Borehole"},
			RelatedLayerNames: []string{"gsml:MappedFeature"},
		})

		assert.Equal(t, knownlayer.Belongs, classify(t, s, &models.Record{
			OnlineResources: []models.OnlineResource{wfs("http://a/wfs", "gsml:Borehole")},
		}))
		assert.Equal(t, knownlayer.Related, classify(t, s, &models.Record{
			OnlineResources: []models.OnlineResource{wfs("http://a/wfs", "gsml:MappedFeature")},
		}))
		assert.Equal(t, knownlayer.NotRelated, classify(t, s, &models.Record{
			OnlineResources: []models.OnlineResource{{URL: "http://a/wms", Name: "gsml:Borehole", Protocol: models.ProtocolWMS}},
		}))
	})

	t.Run("allow list restricts endpoints", func(t *testing.T) {
		s := NewOnlineResourceSelector(OnlineResourceConfig{
			Protocol:         models.ProtocolWFS,
			LayerNames:       []string{"gsml:Borehole"},
			ServiceEndpoints: []string{"http://trusted/"},
			IncludeEndpoints: true,
		})

		assert.Equal(t, knownlayer.Belongs, classify(t, s, &models.Record{
			OnlineResources: []models.OnlineResource{wfs("http://trusted/geoserver/wfs?x=1", "gsml:Borehole")},
		}))
		assert.Equal(t, knownlayer.NotRelated, classify(t, s, &models.Record{
			OnlineResources: []models.OnlineResource{wfs("http://other/wfs", "gsml:Borehole")},
		}))
	})

	t.Run("deny list excludes endpoints", func(t *testing.T) {
		s := NewOnlineResourceSelector(OnlineResourceConfig{
			Protocol:         models.ProtocolWFS,
			LayerNames:       []string{"gsml:Borehole"},
			ServiceEndpoints: []string{"http://broken/"},
		})

		assert.Equal(t, knownlayer.NotRelated, classify(t, s, &models.Record{
			OnlineResources: []models.OnlineResource{wfs("http://broken/wfs", "gsml:Borehole")},
		}))
		assert.Equal(t, knownlayer.Belongs, classify(t, s, &models.Record{
			OnlineResources: []models.OnlineResource{
				wfs("http://broken/wfs", "gsml:Borehole"),
				wfs("http://ok/wfs", "gsml:Borehole"),
			},
		}))
	})
}
