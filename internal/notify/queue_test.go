package notify_test

import (
	"testing"
	"time"

	"bookingslots/internal/notify"
)

func TestPushAndListInsertionOrder(t *testing.T) {
	q := notify.NewQueue(time.Minute)
	defer q.Close()

	q.Push("first", notify.SeveritySuccess)
	q.Push("second", notify.SeverityError)
	q.Push("third", notify.SeverityInfo)

	items := q.List()
	if len(items) != 3 {
		t.Fatalf("got %d notifications, want 3", len(items))
	}

	for i, want := range []string{"first", "second", "third"} {
		if items[i].Message != want {
			t.Fatalf("item %d = %q, want %q", i, items[i].Message, want)
		}
	}

	if items[0].ID == items[1].ID {
		t.Fatal("notifications share an id")
	}
	if items[1].Severity != notify.SeverityError {
		t.Fatalf("severity = %q, want error", items[1].Severity)
	}
}

func TestNotificationsExpire(t *testing.T) {
	q := notify.NewQueue(30 * time.Millisecond)
	defer q.Close()

	q.Push("short lived", notify.SeverityInfo)

	if len(q.List()) != 1 {
		t.Fatal("notification not pending right after push")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(q.List()) == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("notification did not expire")
}

func TestExpiryRemovesOnlyItsOwnEntry(t *testing.T) {
	q := notify.NewQueue(40 * time.Millisecond)
	defer q.Close()

	q.Push("old", notify.SeverityInfo)
	time.Sleep(25 * time.Millisecond)
	q.Push("young", notify.SeverityInfo)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		items := q.List()
		if len(items) == 1 {
			if items[0].Message != "young" {
				t.Fatalf("wrong survivor: %q", items[0].Message)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("older notification never expired on its own")
}

func TestSubscribeReceivesPushes(t *testing.T) {
	q := notify.NewQueue(time.Minute)
	defer q.Close()

	ch, cancel := q.Subscribe()
	defer cancel()

	pushed := q.Push("hello", notify.SeveritySuccess)

	select {
	case got := <-ch:
		if got.ID != pushed.ID {
			t.Fatalf("received %q, want %q", got.ID, pushed.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the push")
	}
}

func TestCancelledSubscriberStopsReceiving(t *testing.T) {
	q := notify.NewQueue(time.Minute)
	defer q.Close()

	ch, cancel := q.Subscribe()
	cancel()

	q.Push("after cancel", notify.SeverityInfo)

	if _, ok := <-ch; ok {
		t.Fatal("cancelled subscriber channel still open")
	}
}
