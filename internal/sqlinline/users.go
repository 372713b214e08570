// Package sqlinline holds every SQL statement this service runs. Each
// constant starts with a `--sql <uuid>` marker consumed by infra.SQLRunner.
package sqlinline

const QInsertUser = `--sql ab3c8468-2bdd-4f27-9f41-89ee90ffc830
insert into users (id, auth_user_id, email, name, phone, profile_image_url, tier, is_active, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7, true, now(), now());
`

const QSelectUserByID = `--sql 48c0de70-eb55-4c0c-ac84-d0b0b5d923e3
select id, auth_user_id, email, name, coalesce(phone, ''), coalesce(profile_image_url, ''), tier, is_active, created_at, updated_at
from users
where id = $1
limit 1;
`

const QSelectUserByAuthUserID = `--sql 8a620136-488c-46f7-aadd-6a1dfe618646
select id, auth_user_id, email, name, coalesce(phone, ''), coalesce(profile_image_url, ''), tier, is_active, created_at, updated_at
from users
where auth_user_id = $1
limit 1;
`

const QSelectUserByEmail = `--sql 8895e109-f45c-4f42-983a-fac05dc0c827
select id, auth_user_id, email, name, coalesce(phone, ''), coalesce(profile_image_url, ''), tier, is_active, created_at, updated_at
from users
where email = $1
limit 1;
`

const QUpdateUserProfile = `--sql 5f80a0fb-52cc-4503-968e-a8ae2d15690c
update users
set name = $2,
    phone = $3,
    updated_at = now()
where id = $1;
`

const QUpdateUserProfileImage = `--sql 2985e5a8-e944-4ca7-8999-65a345323e3f
update users
set profile_image_url = $2,
    updated_at = now()
where id = $1;
`

const QUpdateUserTier = `--sql f4ac1170-cd79-4570-8c63-6a0a871c6729
update users
set tier = $2,
    updated_at = now()
where id = $1;
`

const QSetUserActive = `--sql 874f0ca6-7a16-4b4c-8d83-770c538e3076
update users
set is_active = $2,
    updated_at = now()
where id = $1;
`

const QSelectAllUsers = `--sql c8bfcc82-6b66-4067-87a9-6073bfe841a8
select id, auth_user_id, email, name, coalesce(phone, ''), coalesce(profile_image_url, ''), tier, is_active, created_at, updated_at
from users
order by created_at;
`
