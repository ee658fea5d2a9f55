package impl

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	deliverycontext "smarthr/internal/delivery/context"
	"smarthr/internal/domain/entity"
	"smarthr/internal/domain/service"
)

// notifier renders the account emails and hands them to the dispatcher.
// Dispatch never blocks and never reports delivery failures.
type notifier struct {
	dispatcher  service.MailDispatcher
	frontendURL string
}

func newNotifier(dispatcher service.MailDispatcher, frontendURL string) *notifier {
	return &notifier{
		dispatcher:  dispatcher,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

func (n *notifier) accountLocked(ctx context.Context, account *entity.Account, minutes int) {
	n.dispatch(ctx, service.MailMessage{
		To:      account.Email,
		Subject: "Your SmartHR account has been temporarily locked",
		Body: fmt.Sprintf("Hello %s,\n\n"+
			"Your account was locked after several failed sign-in attempts. "+
			"You can try again in %d minutes.\n\n"+
			"If these attempts were not yours, contact an administrator or reset your password.\n",
			account.FullName(), minutes),
	})
}

func (n *notifier) passwordReset(ctx context.Context, account *entity.Account, token string) {
	n.dispatch(ctx, service.MailMessage{
		To:      account.Email,
		Subject: "Reset your SmartHR password",
		Body: fmt.Sprintf("Hello %s,\n\n"+
			"Use the link below to choose a new password:\n\n%s\n\n"+
			"If you did not ask for this, ignore this email.\n",
			account.FullName(), n.link("/reset-password", token)),
	})
}

func (n *notifier) verifyEmail(ctx context.Context, account *entity.Account, token string) {
	n.dispatch(ctx, service.MailMessage{
		To:      account.Email,
		Subject: "Verify your SmartHR email address",
		Body: fmt.Sprintf("Hello %s,\n\n"+
			"Confirm your email address with the link below:\n\n%s\n\n"+
			"If you did not create this account, ignore this email.\n",
			account.FullName(), n.link("/verify-email", token)),
	})
}

func (n *notifier) dispatch(ctx context.Context, msg service.MailMessage) {
	msg.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	n.dispatcher.Dispatch(msg)
}

func (n *notifier) link(path, token string) string {
	return n.frontendURL + path + "?token=" + url.QueryEscape(token)
}
