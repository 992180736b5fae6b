package knownlayer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"mapportal/internal/catalog/models"
)

// =============================================================================
// Grouping Engine Test Suite
// =============================================================================
// The engine is pure: fixed selectors over a fixed snapshot must always yield
// the same partition. Records are compared by pointer throughout.

// scriptedSelector returns a fixed relation per record pointer and counts calls.
type scriptedSelector struct {
	outcomes map[*models.Record]Relation
	calls    int
}

func (s *scriptedSelector) IsRelatedRecord(r *models.Record) (Relation, error) {
	s.calls++
	return s.outcomes[r], nil
}

type GroupingSuite struct {
	suite.Suite
	r1, r2, r3 *models.Record
	records    []*models.Record
}

func TestGroupingSuite(t *testing.T) {
	suite.Run(t, new(GroupingSuite))
}

func (s *GroupingSuite) SetupTest() {
	s.r1 = &models.Record{Identifier: "id1"}
	s.r2 = &models.Record{Identifier: "id2"}
	s.r3 = &models.Record{Identifier: "id3"}
	s.records = []*models.Record{s.r1, s.r2, s.r3}
}

func (s *GroupingSuite) layer(id string, kind Kind, outcomes map[*models.Record]Relation) (*KnownLayer, *scriptedSelector) {
	sel := &scriptedSelector{outcomes: outcomes}
	l, err := New(id, sel, WithKind(kind))
	s.Require().NoError(err)
	return l, sel
}

// requireSameRecords asserts both slices hold the same pointers in the same order.
func (s *GroupingSuite) requireSameRecords(expected, actual []*models.Record) {
	s.Require().Len(actual, len(expected))
	for i := range expected {
		s.Same(expected[i], actual[i], "record %d", i)
	}
}

// =============================================================================
// Basic Grouping
// =============================================================================

func (s *GroupingSuite) TestBasicGrouping() {
	l1, sel1 := s.layer("id1", KindBase, map[*models.Record]Relation{s.r1: Belongs})
	l2, sel2 := s.layer("id2", KindBase, map[*models.Record]Relation{s.r1: Related, s.r2: Related})

	grouping, err := GroupRecords([]*KnownLayer{l1, l2}, s.records)
	s.Require().NoError(err)

	s.Require().Len(grouping.KnownLayers, 2)
	s.Same(l1, grouping.KnownLayers[0].KnownLayer)
	s.requireSameRecords([]*models.Record{s.r1}, grouping.KnownLayers[0].BelongingRecords)
	s.requireSameRecords([]*models.Record{}, grouping.KnownLayers[0].RelatedRecords)

	s.Same(l2, grouping.KnownLayers[1].KnownLayer)
	s.requireSameRecords([]*models.Record{}, grouping.KnownLayers[1].BelongingRecords)
	s.requireSameRecords([]*models.Record{s.r1, s.r2}, grouping.KnownLayers[1].RelatedRecords)

	s.requireSameRecords(s.records, grouping.OriginalRecords)
	s.requireSameRecords([]*models.Record{s.r3}, grouping.UnmappedRecords)

	s.Run("every pair is evaluated exactly once", func() {
		s.Equal(3, sel1.calls)
		s.Equal(3, sel2.calls)
	})
}

func (s *GroupingSuite) TestNonExclusiveMembership() {
	l1, _ := s.layer("a", KindBase, map[*models.Record]Relation{s.r2: Belongs})
	l2, _ := s.layer("b", KindBase, map[*models.Record]Relation{s.r2: Related})

	grouping, err := GroupRecords([]*KnownLayer{l1, l2}, s.records)
	s.Require().NoError(err)

	s.requireSameRecords([]*models.Record{s.r2}, grouping.Layer("a").BelongingRecords)
	s.requireSameRecords([]*models.Record{s.r2}, grouping.Layer("b").RelatedRecords)
	s.requireSameRecords([]*models.Record{s.r1, s.r3}, grouping.UnmappedRecords)
}

func (s *GroupingSuite) TestOrderPreservation() {
	l1, _ := s.layer("a", KindBase, map[*models.Record]Relation{s.r3: Belongs, s.r1: Belongs, s.r2: Related})

	reversed := []*models.Record{s.r3, s.r2, s.r1}
	grouping, err := GroupRecords([]*KnownLayer{l1}, reversed)
	s.Require().NoError(err)

	s.requireSameRecords([]*models.Record{s.r3, s.r1}, grouping.KnownLayers[0].BelongingRecords)
	s.requireSameRecords([]*models.Record{s.r2}, grouping.KnownLayers[0].RelatedRecords)
	s.Empty(grouping.UnmappedRecords)
}

// =============================================================================
// Partition Invariants
// =============================================================================

func (s *GroupingSuite) TestPartitionCompleteness() {
	extra := &models.Record{Identifier: "id4"}
	records := append(s.records, extra)
	l1, _ := s.layer("a", KindBase, map[*models.Record]Relation{s.r1: Belongs, extra: Related})
	l2, _ := s.layer("b", KindVocabulary, map[*models.Record]Relation{s.r1: Related})

	grouping, err := GroupRecords([]*KnownLayer{l1, l2}, records)
	s.Require().NoError(err)

	inBucket := map[*models.Record]bool{}
	for _, b := range grouping.KnownLayers {
		for _, r := range b.BelongingRecords {
			inBucket[r] = true
		}
		for _, r := range b.RelatedRecords {
			inBucket[r] = true
		}
	}
	unmapped := map[*models.Record]bool{}
	for _, r := range grouping.UnmappedRecords {
		unmapped[r] = true
	}

	for _, r := range records {
		s.NotEqual(inBucket[r], unmapped[r], "record %s must be in exactly one of buckets or unmapped", r.Identifier)
	}
}

func (s *GroupingSuite) TestDistinctRecordsWithSameIdentifier() {
	twinA := &models.Record{Identifier: "dup"}
	twinB := &models.Record{Identifier: "dup"}
	l1, _ := s.layer("a", KindBase, map[*models.Record]Relation{twinA: Belongs})

	grouping, err := GroupRecords([]*KnownLayer{l1}, []*models.Record{twinA, twinB})
	s.Require().NoError(err)

	s.requireSameRecords([]*models.Record{twinA}, grouping.KnownLayers[0].BelongingRecords)
	s.requireSameRecords([]*models.Record{twinB}, grouping.UnmappedRecords)
}

func (s *GroupingSuite) TestEmptyRegistry() {
	grouping, err := GroupRecords(nil, s.records)
	s.Require().NoError(err)

	s.Empty(grouping.KnownLayers)
	s.requireSameRecords(s.records, grouping.UnmappedRecords)
}

func (s *GroupingSuite) TestSnapshotIsCopied() {
	l1, _ := s.layer("a", KindBase, map[*models.Record]Relation{s.r1: Belongs})
	records := []*models.Record{s.r1, s.r2}

	grouping, err := GroupRecords([]*KnownLayer{l1}, records)
	s.Require().NoError(err)

	records[0] = s.r3
	s.Same(s.r1, grouping.OriginalRecords[0])
}

// =============================================================================
// Kind Filtering
// =============================================================================

func (s *GroupingSuite) TestGroupRecordsOfKind() {
	s.Run("only layers of the requested kind are returned", func() {
		l1, _ := s.layer("id1", KindBase, nil)
		l2, _ := s.layer("id2", KindVocabulary, map[*models.Record]Relation{s.r1: Belongs})
		l3, _ := s.layer("id3", KindBase, nil)

		grouping, err := GroupRecordsOfKind([]*KnownLayer{l1, l2, l3}, s.records, KindVocabulary)
		s.Require().NoError(err)

		s.Require().Len(grouping.KnownLayers, 1)
		s.Same(l2, grouping.KnownLayers[0].KnownLayer)
		s.requireSameRecords([]*models.Record{s.r1}, grouping.KnownLayers[0].BelongingRecords)
		s.requireSameRecords([]*models.Record{s.r2, s.r3}, grouping.UnmappedRecords)
	})

	s.Run("filtering changes the partition", func() {
		base, baseSel := s.layer("base", KindBase, map[*models.Record]Relation{s.r1: Belongs})
		derived, _ := s.layer("derived", KindVocabulary, map[*models.Record]Relation{s.r2: Related})

		all, err := GroupRecords([]*KnownLayer{base, derived}, s.records)
		s.Require().NoError(err)
		s.requireSameRecords([]*models.Record{s.r3}, all.UnmappedRecords)

		baseSel.calls = 0
		filtered, err := GroupRecordsOfKind([]*KnownLayer{base, derived}, s.records, KindVocabulary)
		s.Require().NoError(err)
		s.requireSameRecords([]*models.Record{s.r1, s.r3}, filtered.UnmappedRecords)
		s.Zero(baseSel.calls, "excluded layers must not be evaluated")
	})

	s.Run("requesting the base kind excludes subtypes", func() {
		base, _ := s.layer("base", KindBase, nil)
		derived, _ := s.layer("derived", KindReport, map[*models.Record]Relation{s.r1: Belongs})

		grouping, err := GroupRecordsOfKind([]*KnownLayer{base, derived}, s.records, KindBase)
		s.Require().NoError(err)
		s.Require().Len(grouping.KnownLayers, 1)
		s.Equal("base", grouping.KnownLayers[0].KnownLayer.ID())
		s.Len(grouping.UnmappedRecords, 3)
	})
}

// =============================================================================
// Selector Faults
// =============================================================================

func (s *GroupingSuite) TestSelectorFault() {
	boom := errors.New("keyword service unreachable")

	s.Run("error aborts the grouping", func() {
		ok, _ := s.layer("ok", KindBase, map[*models.Record]Relation{s.r1: Belongs})
		failing, err := New("failing", SelectorFunc(func(r *models.Record) (Relation, error) {
			if r == s.r2 {
				return NotRelated, boom
			}
			return NotRelated, nil
		}))
		s.Require().NoError(err)

		grouping, err := GroupRecords([]*KnownLayer{ok, failing}, s.records)
		s.Nil(grouping)
		s.ErrorIs(err, boom)

		var fault *SelectorFaultError
		s.Require().ErrorAs(err, &fault)
		s.Equal("failing", fault.LayerID)
		s.Equal("id2", fault.RecordID)
	})

	s.Run("undefined relation is a fault", func() {
		bad, err := New("bad", SelectorFunc(func(*models.Record) (Relation, error) {
			return Relation(42), nil
		}))
		s.Require().NoError(err)

		_, err = GroupRecords([]*KnownLayer{bad}, s.records)
		s.ErrorIs(err, ErrInvalidRelation)
	})

	s.Run("nil layer is rejected", func() {
		_, err := GroupRecords([]*KnownLayer{nil}, s.records)
		s.Error(err)
		s.Contains(err.Error(), "nil layer")
	})
}
