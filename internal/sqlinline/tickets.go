package sqlinline

const QInsertTicketTransaction = `--sql 5fdb2a1d-4117-4ad8-a471-c365d5f04cf2
insert into ticket_transactions (id, user_id, transaction_type, ticket_amount, balance_before, balance_after, reason, created_at)
values ($1, $2, $3, $4, $5, $6, $7, now())
returning created_at;
`

const QSumTicketAmounts = `--sql e2ee6518-e726-4d74-8ac5-ef93040cfed0
select coalesce(sum(ticket_amount), 0)
from ticket_transactions
where user_id = $1;
`

const QSelectLastTransactionByType = `--sql 0d08eb5d-ccb5-4e97-98f6-f26ecefba978
select id, user_id, transaction_type, ticket_amount, balance_before, balance_after, coalesce(reason, ''), created_at
from ticket_transactions
where user_id = $1
  and transaction_type = $2
order by created_at desc, id desc
limit 1;
`

const QSelectTransactionsByUser = `--sql 99e01c02-362d-4478-b487-adad0237d66f
select id, user_id, transaction_type, ticket_amount, balance_before, balance_after, coalesce(reason, ''), created_at
from ticket_transactions
where user_id = $1
order by created_at desc, id desc;
`
