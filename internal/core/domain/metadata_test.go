package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_Kind(t *testing.T) {
	tests := []struct {
		meta Metadata
		want ResultType
	}{
		{&TaskMetadata{}, ResultTypeTask},
		{&PageMetadata{}, ResultTypePage},
		{&MemberMetadata{}, ResultTypeMember},
		{&CommentMetadata{}, ResultTypeComment},
		{&AttachmentMetadata{}, ResultTypeAttachment},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.meta.Kind())
	}
}

func TestTaskMetadata_Attributes(t *testing.T) {
	m := &TaskMetadata{
		Status:         "todo",
		Priority:       "high",
		AssignedTo:     "u1",
		CreatedBy:      "u2",
		Tags:           []string{"ops"},
		HasAttachments: true,
	}

	attrs := m.Attributes()
	assert.Equal(t, "todo", attrs.Status)
	assert.Equal(t, "high", attrs.Priority)
	assert.Equal(t, "u1", attrs.AssignedTo)
	assert.Equal(t, "u2", attrs.CreatedBy)
	assert.Equal(t, []string{"ops"}, attrs.Tags)
	require.NotNil(t, attrs.HasAttachments)
	require.NotNil(t, attrs.HasComments)
	assert.True(t, *attrs.HasAttachments)
	assert.False(t, *attrs.HasComments)
}

func TestNonTaskMetadata_BooleansUnknown(t *testing.T) {
	for _, m := range []Metadata{&PageMetadata{}, &MemberMetadata{}, &CommentMetadata{}, &AttachmentMetadata{}} {
		attrs := m.Attributes()
		assert.Nil(t, attrs.HasAttachments, "%s", m.Kind())
		assert.Nil(t, attrs.HasComments, "%s", m.Kind())
	}
}

func TestAttributesOf(t *testing.T) {
	assert.Equal(t, Attributes{}, AttributesOf(nil))
	assert.Equal(t, "u9", AttributesOf(&AttachmentMetadata{UploadedBy: "u9"}).CreatedBy)
	assert.Equal(t, []string{"wiki"}, AttributesOf(&PageMetadata{Tags: []string{"wiki"}}).Tags)
}
