package selection

import(
	"fmt"
	"strings"
	"sync"
)

// Subscriber is anything that redraws itself from a selection result.
type Subscriber interface {
	Update(Result) error
}

type SubscriberFunc func(Result) error
func (f SubscriberFunc)Update(r Result) error { return f(r) }

// {{{ Dispatcher

// Dispatcher forwards each freshly computed result to its subscribers, in the
// order they subscribed.
type Dispatcher struct {
	sync.Mutex
	subs []Subscriber
}

func (d *Dispatcher)Subscribe(s Subscriber) {
	d.Lock()
	defer d.Unlock()
	d.subs = append(d.subs, s)
}

func (d *Dispatcher)Len() int {
	d.Lock()
	defer d.Unlock()
	return len(d.subs)
}

// Reset drops all subscribers; the views are rebuilt on a reload.
func (d *Dispatcher)Reset() {
	d.Lock()
	defer d.Unlock()
	d.subs = nil
}

// Publish calls every subscriber, even after one has failed.
func (d *Dispatcher)Publish(r Result) error {
	d.Lock()
	subs := append([]Subscriber{}, d.subs...)
	d.Unlock()

	errs := PublishErrors{}
	for i,s := range subs {
		if err := s.Update(r); err != nil {
			errs = append(errs, fmt.Errorf("subscriber %d: %w", i, err))
		}
	}
	if len(errs) > 0 { return errs }
	return nil
}

// }}}
// {{{ PublishErrors

type PublishErrors []error

func (pe PublishErrors)Error() string {
	strs := []string{}
	for _,err := range pe { strs = append(strs, err.Error()) }
	return fmt.Sprintf("%d subscribers failed: %s", len(pe), strings.Join(strs, "; "))
}

func (pe PublishErrors)Unwrap() []error { return pe }

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
