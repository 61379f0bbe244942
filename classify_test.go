package nntpframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMultiLineCodes(t *testing.T) {
	assert.Equal(t,
		[]int{100, 101, 215, 220, 221, 222, 224, 225, 230, 231},
		DefaultMultiLineCodes().Codes(),
	)
}

func TestDefaultMultiLineCodes_ReturnsIndependentCopies(t *testing.T) {
	a := DefaultMultiLineCodes()
	delete(a, StatusHelpText)
	a[299] = struct{}{}

	b := DefaultMultiLineCodes()
	assert.True(t, b.Contains(StatusHelpText))
	assert.False(t, b.Contains(299))
	assert.Equal(t, MultiLine, ClassificationTable(nil).Classify(StatusHelpText))
}

func TestClassificationTable_WithWithout(t *testing.T) {
	base := NewClassificationTable(StatusHelpText)

	extended := base.With(290)
	assert.True(t, extended.Contains(290))
	assert.False(t, base.Contains(290))

	reduced := extended.Without(StatusHelpText)
	assert.Equal(t, []int{290}, reduced.Codes())
	assert.True(t, extended.Contains(StatusHelpText))

	fromDefault := ClassificationTable(nil).Without(StatusBodyFollows)
	assert.False(t, fromDefault.Contains(StatusBodyFollows))
	assert.True(t, fromDefault.Contains(StatusArticleFollows))
}

func TestClassificationTable_Classify(t *testing.T) {
	table := DefaultMultiLineCodes()

	for _, code := range table.Codes() {
		assert.Equal(t, MultiLine, table.Classify(code), "code %d", code)
	}
	for _, code := range []int{111, 200, 205, 211, 223, 240, 281, 340, 381, 411, 430, 500, 502} {
		assert.Equal(t, SingleLine, table.Classify(code), "code %d", code)
	}

	empty := NewClassificationTable()
	assert.Equal(t, SingleLine, empty.Classify(StatusHelpText))
}

func TestClassifyStatus_TagsGroupSelected(t *testing.T) {
	assert.Equal(t, dependsOnCommand, classifyStatus(StatusGroupSelected, nil))
	assert.Equal(t, dependsOnCommand, classifyStatus(StatusGroupSelected, NewClassificationTable(211)))
	assert.Equal(t, MultiLine, classifyStatus(StatusListFollows, nil))
	assert.Equal(t, SingleLine, classifyStatus(200, nil))
}

func TestIsListGroup(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"LISTGROUP misc.test\r\n", true},
		{"listgroup misc.test\r\n", true},
		{"ListGroup\r\n", true},
		{"LISTGROUP", true},
		{"  LISTGROUP misc.test\r\n", true},
		{"LISTGROUP\tmisc.test\r\n", true},
		{"GROUP misc.test\r\n", false},
		{"LISTGROUPS misc.test\r\n", false},
		{"LISTGRO\r\n", false},
		{"LIST GROUP\r\n", false},
		{"", false},
		{"\r\n", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isListGroup([]byte(tt.command)), "command %q", tt.command)
	}
}

func TestFraming_String(t *testing.T) {
	assert.Equal(t, "single-line", SingleLine.String())
	assert.Equal(t, "multi-line", MultiLine.String())
	assert.Equal(t, "depends-on-command", dependsOnCommand.String())
}
