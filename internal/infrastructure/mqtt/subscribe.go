package mqtt

import "fmt"

// Subscribe registers pattern (which may contain `+`/`#` wildcards) at qos.
// Every message matching any active subscription reaches the Handler passed
// to Connect; internal/topicengine does the per-topic-entry matching.
// Subscriptions are tracked and restored automatically on reconnect.
func (c *Client) Subscribe(pattern string, qos byte) error {
	if pattern == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	c.subMu.Lock()
	c.subscriptions[pattern] = qos
	c.subMu.Unlock()

	token := c.client.Subscribe(pattern, qos, nil)
	if !token.WaitTimeout(defaultPublishTimeout) {
		c.forgetSubscription(pattern)
		return fmt.Errorf("%w: timeout after %v", ErrSubscribeFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		c.forgetSubscription(pattern)
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}
	return nil
}

func (c *Client) forgetSubscription(pattern string) {
	c.subMu.Lock()
	delete(c.subscriptions, pattern)
	c.subMu.Unlock()
}

// Unsubscribe removes pattern and stops delivering messages matching it.
func (c *Client) Unsubscribe(pattern string) error {
	if pattern == "" {
		return ErrInvalidTopic
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	c.forgetSubscription(pattern)

	token := c.client.Unsubscribe(pattern)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrUnsubscribeFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsubscribeFailed, err)
	}
	return nil
}

// SubscriptionCount reports the number of active subscriptions.
func (c *Client) SubscriptionCount() int {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	return len(c.subscriptions)
}
