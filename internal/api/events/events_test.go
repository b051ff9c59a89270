// Package events - Test đăng ký, hủy đăng ký và phát event thay đổi dữ liệu.
package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnDataChanged_ReceivesEvent(t *testing.T) {
	received := make(chan DataChangeEvent, 1)
	unsubscribe := OnDataChanged(func(ctx context.Context, ev DataChangeEvent) {
		received <- ev
	})
	defer unsubscribe()

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "staging_batches",
		Operation:      OpInsert,
	})

	select {
	case ev := <-received:
		assert.Equal(t, "staging_batches", ev.CollectionName)
		assert.Equal(t, OpInsert, ev.Operation)
	case <-time.After(2 * time.Second):
		t.Fatal("handler không nhận được event")
	}
}

func TestOnDataChanged_UnsubscribeStopsDelivery(t *testing.T) {
	received := make(chan DataChangeEvent, 4)
	unsubscribe := OnDataChanged(func(ctx context.Context, ev DataChangeEvent) {
		received <- ev
	})

	unsubscribe()
	EmitDataChanged(context.Background(), DataChangeEvent{CollectionName: "quiz_questions", Operation: OpDelete})

	select {
	case <-received:
		t.Fatal("handler đã hủy đăng ký vẫn nhận được event")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestEmitDataChanged_PanickingHandlerDoesNotAffectOthers(t *testing.T) {
	received := make(chan struct{}, 1)

	unsubBad := OnDataChanged(func(ctx context.Context, ev DataChangeEvent) {
		panic("hỏng")
	})
	defer unsubBad()
	unsubGood := OnDataChanged(func(ctx context.Context, ev DataChangeEvent) {
		received <- struct{}{}
	})
	defer unsubGood()

	EmitDataChanged(context.Background(), DataChangeEvent{CollectionName: "quiz_questions", Operation: OpUpdate})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		require.Fail(t, "handler lành vẫn phải nhận event khi handler khác panic")
	}
}
