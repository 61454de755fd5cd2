package s3

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

func TestNew_RequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error without bucket")
	}
}

func TestObjectKey_PrefixAndClientScope(t *testing.T) {
	cases := []struct {
		prefix string
		key    string
		want   string
	}{
		{"", "pet_memories_data", "pet_memories_data"},
		{"memorials", "pet_memories_data", "memorials/pet_memories_data"},
		{"/memorials/", "client:abc:pet_memories_user_id", "memorials/client/abc/pet_memories_user_id"},
	}
	for _, tc := range cases {
		s := &KV{prefix: normalizePrefix(tc.prefix)}
		if got := s.objectKey(tc.key); got != tc.want {
			t.Fatalf("objectKey(%q, %q) = %q, want %q", tc.prefix, tc.key, got, tc.want)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("wrapped: %w", &types.NoSuchKey{})) {
		t.Fatalf("expected NoSuchKey to be not found")
	}
	if !isNotFound(&smithy.GenericAPIError{Code: "NotFound"}) {
		t.Fatalf("expected NotFound api error to be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("plain error must not be not found")
	}
}
